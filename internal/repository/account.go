package repository

import (
	"context"
	"errors"

	"medconnect/internal/models"

	"gorm.io/gorm"
)

// AccountRepository stores registered doctors.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdateProfile(ctx context.Context, id uint, update models.ProfileUpdate) (*models.Account, error)
}

type accountRepository struct {
	base
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB, opts ...Option) AccountRepository {
	return &accountRepository{base: newBase(db, opts)}
}

// Create inserts account. A taken email yields a Conflict error.
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := db.Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("Email already exists")
		}
		return models.NewStorageError("insert account", err)
	}
	return nil
}

// GetByID returns the account or a NotFound error.
func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var account models.Account
	if err := db.Take(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Account", id)
		}
		return nil, models.NewStorageError("get account", err)
	}
	return &account, nil
}

// GetByEmail returns (nil, nil) when no account uses email.
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var account models.Account
	if err := db.Where("email = ?", email).Take(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStorageError("get account by email", err)
	}
	return &account, nil
}

// UpdateProfile writes the editable profile fields and returns the stored account.
func (r *accountRepository) UpdateProfile(ctx context.Context, id uint, update models.ProfileUpdate) (*models.Account, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	fields := map[string]any{
		"name":       update.Name,
		"about":      update.About,
		"profession": update.Profession,
	}
	if update.ProfileImage != nil {
		fields["profile_image"] = *update.ProfileImage
	}

	res := db.Model(&models.Account{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, models.NewStorageError("update profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Account", id)
	}

	return r.GetByID(ctx, id)
}
