package repository

import (
	"context"

	"medconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]models.CommentView, error)
}

type commentRepository struct {
	base
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB, opts ...Option) CommentRepository {
	return &commentRepository{base: newBase(db, opts)}
}

// Create appends comment. A missing post (or author) yields NotFound.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := db.Omit(clause.Associations).Create(comment).Error; err != nil {
		if isForeignKeyViolation(err) {
			return models.NewNotFoundError("Post", comment.PostID)
		}
		return models.NewStorageError("insert comment", err)
	}
	return nil
}

// ListByPost returns the post's comments oldest first with author names.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	views := make([]models.CommentView, 0)
	err := db.Table("comments").
		Select(`comments.id AS comment_id,
			comments.post_id AS post_id,
			comments.account_id AS author_id,
			accounts.name AS author_name,
			comments.content AS content,
			comments.created_at AS created_at`).
		Joins("JOIN accounts ON accounts.id = comments.account_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Order("comments.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, models.NewStorageError("list comments", err)
	}
	return views, nil
}
