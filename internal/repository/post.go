package repository

import (
	"context"
	"errors"

	"medconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines interface for post operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID uint) (bool, error)
	FindOwned(ctx context.Context, postID, accountID uint) (*models.Post, error)
	ListFeed(ctx context.Context) ([]models.FeedRow, error)
}

type postRepository struct {
	base
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB, opts ...Option) PostRepository {
	return &postRepository{base: newBase(db, opts)}
}

// Create inserts post and fills in its id. An unknown author yields NotFound.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := db.Omit(clause.Associations).Create(post).Error; err != nil {
		if isForeignKeyViolation(err) {
			return models.NewNotFoundError("Account", post.AccountID)
		}
		return models.NewStorageError("insert post", err)
	}
	return nil
}

// Delete removes the post; likes and comments go with it through the foreign keys.
// It reports whether a row was removed.
func (r *postRepository) Delete(ctx context.Context, postID uint) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Delete(&models.Post{}, postID)
	if res.Error != nil {
		return false, models.NewStorageError("delete post", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// FindOwned returns the post only when accountID authored it, and (nil, nil) otherwise.
func (r *postRepository) FindOwned(ctx context.Context, postID, accountID uint) (*models.Post, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var post models.Post
	err := db.Where("id = ? AND account_id = ?", postID, accountID).Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewStorageError("find owned post", err)
	}
	return &post, nil
}

// ListFeed returns every post newest first, joined with its author and like count.
func (r *postRepository) ListFeed(ctx context.Context) ([]models.FeedRow, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	rows := make([]models.FeedRow, 0)
	err := db.Table("posts").
		Select(`posts.id AS post_id,
			posts.account_id AS author_id,
			accounts.name AS author_name,
			accounts.profession AS author_profession,
			accounts.profile_image AS author_image,
			posts.content AS content,
			posts.image AS image,
			posts.created_at AS created_at,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count`).
		Joins("JOIN accounts ON accounts.id = posts.account_id").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewStorageError("list feed", err)
	}
	return rows, nil
}
