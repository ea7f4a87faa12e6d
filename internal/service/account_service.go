package service

import (
	"context"
	"errors"
	"strings"

	"medconnect/internal/models"
	"medconnect/internal/repository"
	"medconnect/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints session tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(accountID uint) (string, error)
}

type AccountService struct {
	accountRepo repository.AccountRepository
	tokens      TokenIssuer
	cost        int
	// dummyHash is compared against when the email is unknown so both
	// login failures cost one bcrypt round.
	dummyHash []byte
}

type SignupInput struct {
	Name           string
	Email          string
	Specialization string
	Password       string
}

// LoginResult is a fresh token and the account it was issued for.
type LoginResult struct {
	Token   string
	Account *models.Account
}

// NewAccountService builds the service. cost <= 0 uses bcrypt.DefaultCost.
func NewAccountService(accountRepo repository.AccountRepository, tokens TokenIssuer, cost int) *AccountService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("medconnect-unknown-account"), cost)
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		cost:        cost,
		dummyHash:   dummy,
	}
}

func invalidCredentials() *models.AppError {
	return &models.AppError{Code: models.CodeUnauthenticated, Message: "Invalid email or password"}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a doctor. A taken email yields Conflict.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.Account, error) {
	email := normalizeEmail(in.Email)
	if in.Name == "" || email == "" || in.Password == "" {
		return nil, models.NewValidationError("Name, email, and password are required")
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateShortText("specialization", in.Specialization); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	account := &models.Account{
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Specialization: strings.TrimSpace(in.Specialization),
		Password:       string(hashed),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password produce the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accountRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &LoginResult{Token: token, Account: account}, nil
}

// Me re-reads the caller's account. An account deleted after its token was
// issued is reported as Unauthenticated.
func (s *AccountService) Me(ctx context.Context, accountID uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewUnauthenticatedError()
	}
	return account, err
}

// Profile returns the caller's profile.
func (s *AccountService) Profile(ctx context.Context, accountID uint) (*models.Account, error) {
	return s.accountRepo.GetByID(ctx, accountID)
}

// UpdateProfile validates and applies a profile edit.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID uint, in models.ProfileUpdate) (*models.Account, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateShortText("profession", in.Profession); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateText("about", in.About); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.About) > 5000 {
		return nil, models.NewValidationError("about must not exceed 5000 characters")
	}
	return s.accountRepo.UpdateProfile(ctx, accountID, in)
}
