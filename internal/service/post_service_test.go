package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"medconnect/internal/events"
	"medconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	t.Run("empty content is allowed", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 11
			return nil
		}
		pub := &recordingPublisher{}
		image := "/uploads/1700000000000-abcd1234.png"

		post, err := NewPostService(postRepo, noopLikeRepo(), pub).CreatePost(context.Background(),
			CreatePostInput{AccountID: 7, Image: &image})
		require.NoError(t, err)
		assert.Equal(t, uint(11), post.ID)
		assert.Equal(t, "", post.Content)
		assert.Equal(t, &image, post.Image)
		assert.Equal(t, []string{events.TypePostCreated}, pub.types())
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := NewPostService(noopPostRepo(), noopLikeRepo(), nil).CreatePost(context.Background(),
			CreatePostInput{AccountID: 7, Content: strings.Repeat("x", 50001)})
		assertValidationError(t, err)
	})

	t.Run("store failure surfaces and publishes nothing", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, _ *models.Post) error {
			return models.NewStorageError("insert post", errors.New("disk full"))
		}
		pub := &recordingPublisher{}
		_, err := NewPostService(postRepo, noopLikeRepo(), pub).CreatePost(context.Background(),
			CreatePostInput{AccountID: 7, Content: "hello"})
		assert.ErrorIs(t, err, models.ErrStorage)
		assert.Empty(t, pub.types())
	})

	t.Run("publisher failure does not fail the write", func(t *testing.T) {
		t.Parallel()
		pub := &recordingPublisher{err: errors.New("redis down")}
		post, err := NewPostService(noopPostRepo(), noopLikeRepo(), pub).CreatePost(context.Background(),
			CreatePostInput{AccountID: 7, Content: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("non-owner is forbidden and nothing is deleted", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.findOwnedFn = func(_ context.Context, _, _ uint) (*models.Post, error) { return nil, nil }
		deleted := false
		postRepo.deleteFn = func(_ context.Context, _ uint) (bool, error) {
			deleted = true
			return true, nil
		}
		pub := &recordingPublisher{}

		err := NewPostService(postRepo, noopLikeRepo(), pub).DeletePost(context.Background(), 7, 99)
		assertAppError(t, err, models.CodeForbidden)
		assert.False(t, deleted)
		assert.Empty(t, pub.types())
	})

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		var gotID uint
		postRepo.deleteFn = func(_ context.Context, id uint) (bool, error) {
			gotID = id
			return true, nil
		}
		pub := &recordingPublisher{}

		require.NoError(t, NewPostService(postRepo, noopLikeRepo(), pub).DeletePost(context.Background(), 7, 12))
		assert.Equal(t, uint(12), gotID)
		assert.Equal(t, []string{events.TypePostDeleted}, pub.types())
	})

	t.Run("ownership lookup failure propagates", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.findOwnedFn = func(_ context.Context, _, _ uint) (*models.Post, error) {
			return nil, models.NewStorageError("find owned post", errors.New("timeout"))
		}
		err := NewPostService(postRepo, noopLikeRepo(), nil).DeletePost(context.Background(), 7, 12)
		assert.ErrorIs(t, err, models.ErrStorage)
	})

	t.Run("concurrent delete reports not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.deleteFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		err := NewPostService(postRepo, noopLikeRepo(), nil).DeletePost(context.Background(), 7, 12)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	t.Parallel()

	likeRepo := noopLikeRepo()
	state := false
	likeRepo.toggleFn = func(_ context.Context, _, _ uint) (bool, error) {
		state = !state
		return state, nil
	}
	pub := &recordingPublisher{}
	svc := NewPostService(noopPostRepo(), likeRepo, pub)

	liked, err := svc.ToggleLike(context.Background(), 9, 1)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(context.Background(), 9, 1)
	require.NoError(t, err)
	assert.False(t, liked)

	require.Len(t, pub.got, 2)
	assert.True(t, *pub.got[0].Payload.Liked)
	assert.False(t, *pub.got[1].Payload.Liked)

	likeRepo.toggleFn = func(_ context.Context, _, postID uint) (bool, error) {
		return false, models.NewNotFoundError("Post", postID)
	}
	_, err = svc.ToggleLike(context.Background(), 9, 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
