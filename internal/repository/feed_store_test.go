package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"medconnect/internal/models"
	"medconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndFindOwned(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewPostRepository(db, WithQueryTimeout(time.Second))
	ctx := context.Background()

	author := testutil.CreateAccount(t, db, "Dr. Bailey")
	other := testutil.CreateAccount(t, db, "Dr. Webber")

	post := &models.Post{AccountID: author.ID, Content: ""}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)

	owned, err := repo.FindOwned(ctx, post.ID, author.ID)
	require.NoError(t, err)
	require.NotNil(t, owned)
	assert.Equal(t, author.ID, owned.AccountID)

	notOwned, err := repo.FindOwned(ctx, post.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, notOwned)

	missing, err := repo.FindOwned(ctx, post.ID+100, author.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostRepository_CreateUnknownAuthor(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewPostRepository(db)

	err := repo.Create(context.Background(), &models.Post{AccountID: 404, Content: "ghost"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	posts := NewPostRepository(db)
	likes := NewLikeRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := testutil.CreateAccount(t, db, "Dr. Shepherd")
	post := testutil.CreatePost(t, db, author.ID, "scan results")

	_, err := likes.Toggle(ctx, author.ID, post.ID)
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, &models.Comment{AccountID: author.ID, PostID: post.ID, Content: "noted"}))

	deleted, err := posts.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var likeCount, commentCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)

	deleted, err = posts.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestPostRepository_ListFeed(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewPostRepository(db)
	likes := NewLikeRepository(db)
	ctx := context.Background()

	empty, err := repo.ListFeed(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	image := "/uploads/avatar.png"
	author := testutil.CreateAccount(t, db, "Dr. Yang")
	require.NoError(t, db.Model(author).Update("profile_image", image).Error)
	liker := testutil.CreateAccount(t, db, "Dr. Karev")

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	older := &models.Post{AccountID: author.ID, Content: "older", CreatedAt: base}
	newer := &models.Post{AccountID: author.ID, Content: "newer", CreatedAt: base.Add(time.Hour)}
	sameTimeA := &models.Post{AccountID: liker.ID, Content: "tie-a", CreatedAt: base.Add(30 * time.Minute)}
	sameTimeB := &models.Post{AccountID: liker.ID, Content: "tie-b", CreatedAt: base.Add(30 * time.Minute)}
	for _, p := range []*models.Post{older, newer, sameTimeA, sameTimeB} {
		require.NoError(t, repo.Create(ctx, p))
	}

	for _, accountID := range []uint{author.ID, liker.ID} {
		liked, err := likes.Toggle(ctx, accountID, older.ID)
		require.NoError(t, err)
		require.True(t, liked)
	}

	rows, err := repo.ListFeed(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	ids := []uint{rows[0].PostID, rows[1].PostID, rows[2].PostID, rows[3].PostID}
	assert.Equal(t, []uint{newer.ID, sameTimeB.ID, sameTimeA.ID, older.ID}, ids)

	last := rows[3]
	assert.Equal(t, author.ID, last.AuthorID)
	assert.Equal(t, "Dr. Yang", last.AuthorName)
	assert.Equal(t, "Cardiologist", last.AuthorProfession)
	require.NotNil(t, last.AuthorImage)
	assert.Equal(t, image, *last.AuthorImage)
	assert.Equal(t, int64(2), last.LikeCount)
	assert.Nil(t, last.Image)
	assert.True(t, last.CreatedAt.Equal(base))

	assert.Nil(t, rows[1].AuthorImage)
	assert.Zero(t, rows[0].LikeCount)
}

func TestLikeRepository_Toggle(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	account := testutil.CreateAccount(t, db, "Dr. Torres")
	post := testutil.CreatePost(t, db, account.ID, "ortho rounds")

	liked, err := repo.Toggle(ctx, account.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.Toggle(ctx, account.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count, "two toggles restore the original state")

	_, err = repo.Toggle(ctx, account.ID, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLikeRepository_ConcurrentTogglesKeepSet(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	account := testutil.CreateAccount(t, db, "Dr. Hunt")
	post := testutil.CreatePost(t, db, account.ID, "trauma bay")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Toggle(ctx, account.ID, post.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Where("account_id = ? AND post_id = ?", account.ID, post.ID).Count(&count).Error)
	assert.LessOrEqual(t, count, int64(1))
}

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := testutil.CreateAccount(t, db, "Dr. Robbins")
	commenter := testutil.CreateAccount(t, db, "Dr. Sloan")
	post := testutil.CreatePost(t, db, author.ID, "peds case")

	none, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	second := &models.Comment{AccountID: commenter.ID, PostID: post.ID, Content: "second", CreatedAt: base.Add(time.Minute)}
	first := &models.Comment{AccountID: author.ID, PostID: post.ID, Content: "first", CreatedAt: base}
	third := &models.Comment{AccountID: author.ID, PostID: post.ID, Content: "third", CreatedAt: base.Add(time.Minute)}
	for _, c := range []*models.Comment{second, first, third} {
		require.NoError(t, repo.Create(ctx, c))
		assert.NotZero(t, c.ID)
	}

	views, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{views[0].Content, views[1].Content, views[2].Content})
	assert.Equal(t, "Dr. Sloan", views[1].AuthorName)
	assert.Equal(t, commenter.ID, views[1].AuthorID)
	assert.Equal(t, post.ID, views[0].PostID)
}

func TestCommentRepository_CreateOnMissingPost(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewCommentRepository(db)

	author := testutil.CreateAccount(t, db, "Dr. Altman")
	err := repo.Create(context.Background(), &models.Comment{AccountID: author.ID, PostID: 77, Content: "hello?"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAccountRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &models.Account{Name: "Dr. Grey", Email: "grey@example.com", Specialization: "Surgery", Password: "hash"}
	require.NoError(t, repo.Create(ctx, account))
	assert.NotZero(t, account.ID)

	err := repo.Create(ctx, &models.Account{Name: "Impostor", Email: "grey@example.com", Password: "hash"})
	assert.ErrorIs(t, err, models.ErrConflict)

	found, err := repo.GetByEmail(ctx, "grey@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, account.ID, found.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	image := "/uploads/grey.png"
	updated, err := repo.UpdateProfile(ctx, account.ID, models.ProfileUpdate{
		Name: "Dr. Meredith Grey", About: "General surgeon", Profession: "Surgeon", ProfileImage: &image,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Meredith Grey", updated.Name)
	require.NotNil(t, updated.About)
	assert.Equal(t, "General surgeon", *updated.About)
	require.NotNil(t, updated.ProfileImage)
	assert.Equal(t, image, *updated.ProfileImage)

	kept, err := repo.UpdateProfile(ctx, account.ID, models.ProfileUpdate{Name: "Dr. Grey", Profession: "Surgeon"})
	require.NoError(t, err)
	require.NotNil(t, kept.ProfileImage)
	assert.Equal(t, image, *kept.ProfileImage, "image is kept when no new one is uploaded")

	_, err = repo.UpdateProfile(ctx, 999, models.ProfileUpdate{Name: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
