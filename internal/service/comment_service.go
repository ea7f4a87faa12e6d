package service

import (
	"context"
	"time"

	"medconnect/internal/events"
	"medconnect/internal/models"
	"medconnect/internal/repository"
	"medconnect/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	publisher   events.Publisher
	now         func() time.Time
}

type AddCommentInput struct {
	AccountID uint
	PostID    uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, publisher events.Publisher) *CommentService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CommentService{
		commentRepo: commentRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

// AddComment appends a comment to any existing post. The store reports an
// unknown post as NotFound.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		AccountID: in.AccountID,
		PostID:    in.PostID,
		Content:   in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	notify(ctx, s.publisher, events.CommentCreated(comment.PostID, comment.AccountID, comment.ID, s.now()))
	return comment, nil
}
