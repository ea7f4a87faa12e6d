package repository

import (
	"context"

	"medconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository flips an account's like on a post.
type LikeRepository interface {
	Toggle(ctx context.Context, accountID, postID uint) (bool, error)
}

type likeRepository struct {
	base
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB, opts ...Option) LikeRepository {
	return &likeRepository{base: newBase(db, opts)}
}

// Toggle removes the like if present and adds it otherwise, returning whether
// the account likes the post afterwards. The delete decides membership in one
// statement; the insert ignores a conflicting row left by a concurrent toggle,
// and the composite primary key keeps the pair unique either way.
func (r *likeRepository) Toggle(ctx context.Context, accountID, postID uint) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Where("account_id = ? AND post_id = ?", accountID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewStorageError("delete like", res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := models.Like{AccountID: accountID, PostID: postID}
	err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, models.NewNotFoundError("Post", postID)
		}
		return false, models.NewStorageError("insert like", err)
	}
	return true, nil
}
