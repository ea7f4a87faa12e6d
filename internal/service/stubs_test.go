package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"medconnect/internal/events"
	"medconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn    func(context.Context, *models.Post) error
	deleteFn    func(context.Context, uint) (bool, error)
	findOwnedFn func(context.Context, uint, uint) (*models.Post, error)
	listFeedFn  func(context.Context) ([]models.FeedRow, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, postID uint) (bool, error) {
	return s.deleteFn(ctx, postID)
}
func (s *postRepoStub) FindOwned(ctx context.Context, postID, accountID uint) (*models.Post, error) {
	return s.findOwnedFn(ctx, postID, accountID)
}
func (s *postRepoStub) ListFeed(ctx context.Context) ([]models.FeedRow, error) {
	return s.listFeedFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
		findOwnedFn: func(_ context.Context, postID, accountID uint) (*models.Post, error) {
			return &models.Post{ID: postID, AccountID: accountID}, nil
		},
		listFeedFn: func(_ context.Context) ([]models.FeedRow, error) { return nil, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn func(context.Context, uint, uint) (bool, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, accountID, postID uint) (bool, error) {
	return s.toggleFn(ctx, accountID, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, uint) ([]models.CommentView, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.CommentView, error) { return nil, nil },
	}
}

// accountRepoStub is a stub for repository.AccountRepository.
type accountRepoStub struct {
	createFn        func(context.Context, *models.Account) error
	getByIDFn       func(context.Context, uint) (*models.Account, error)
	getByEmailFn    func(context.Context, string) (*models.Account, error)
	updateProfileFn func(context.Context, uint, models.ProfileUpdate) (*models.Account, error)
}

func (s *accountRepoStub) Create(ctx context.Context, account *models.Account) error {
	return s.createFn(ctx, account)
}
func (s *accountRepoStub) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.getByIDFn(ctx, id)
}
func (s *accountRepoStub) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *accountRepoStub) UpdateProfile(ctx context.Context, id uint, update models.ProfileUpdate) (*models.Account, error) {
	return s.updateProfileFn(ctx, id, update)
}

func noopAccountRepo() *accountRepoStub {
	return &accountRepoStub{
		createFn: func(_ context.Context, a *models.Account) error {
			a.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Account, error) {
			return &models.Account{ID: id}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.Account, error) { return nil, nil },
		updateProfileFn: func(_ context.Context, id uint, u models.ProfileUpdate) (*models.Account, error) {
			return &models.Account{ID: id, Name: u.Name, Profession: u.Profession}, nil
		},
	}
}

// recordingPublisher keeps every event it is handed.
type recordingPublisher struct {
	mu  sync.Mutex
	got []events.Event
	err error
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
	return r.err
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, e := range r.got {
		out = append(out, e.Type)
	}
	return out
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}
