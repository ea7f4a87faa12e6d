package service

import (
	"context"
	"time"

	"medconnect/internal/events"
	"medconnect/internal/models"
	"medconnect/internal/repository"
	"medconnect/internal/validation"
)

type PostService struct {
	postRepo  repository.PostRepository
	likeRepo  repository.LikeRepository
	publisher events.Publisher
	now       func() time.Time
}

type CreatePostInput struct {
	AccountID uint
	Content   string
	Image     *string
}

func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	publisher events.Publisher,
) *PostService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &PostService{
		postRepo:  postRepo,
		likeRepo:  likeRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreatePost stores a post. Empty content is allowed; Image is an opaque
// path produced by the upload service.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		AccountID: in.AccountID,
		Content:   in.Content,
		Image:     in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	notify(ctx, s.publisher, events.PostCreated(post.ID, post.AccountID, s.now()))
	return post, nil
}

// DeletePost removes a post its author owns. Posts that are missing and posts
// owned by someone else both yield Forbidden.
func (s *PostService) DeletePost(ctx context.Context, accountID, postID uint) error {
	post, err := s.postRepo.FindOwned(ctx, postID, accountID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	deleted, err := s.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}
	if !deleted {
		// Lost a race with another delete of the same post.
		return models.NewNotFoundError("Post", postID)
	}

	notify(ctx, s.publisher, events.PostDeleted(postID, accountID, s.now()))
	return nil
}

// ToggleLike flips accountID's like on postID and reports the new state.
func (s *PostService) ToggleLike(ctx context.Context, accountID, postID uint) (bool, error) {
	liked, err := s.likeRepo.Toggle(ctx, accountID, postID)
	if err != nil {
		return false, err
	}

	notify(ctx, s.publisher, events.LikeToggled(postID, accountID, liked, s.now()))
	return liked, nil
}
