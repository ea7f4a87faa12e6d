package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"medconnect/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Create_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	post := &models.Post{AccountID: 3, Content: "hello"}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, uint(11), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_Postgres(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		want     bool
		wantErr  error
	}{
		{"row removed", 1, nil, true, nil},
		{"no such post", 0, nil, false, nil},
		{"storage failure", 0, errors.New("connection reset"), false, models.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			mock.ExpectBegin()
			exec := mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).WithArgs(5)
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
				mock.ExpectRollback()
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, tt.affected))
				mock.ExpectCommit()
			}

			got, err := repo.Delete(context.Background(), 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_ListFeed_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT posts\.id AS post_id.*SELECT COUNT\(\*\) FROM likes WHERE likes\.post_id = posts\.id.*JOIN accounts ON accounts\.id = posts\.account_id.*ORDER BY posts\.created_at DESC,\s*posts\.id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"post_id", "author_id", "author_name", "author_profession", "author_image",
			"content", "image", "created_at", "like_count",
		}).AddRow(2, 1, "Dr. Grey", "Surgeon", nil, "hello", "/uploads/x.png", created, 4))

	rows, err := repo.ListFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(2), rows[0].PostID)
	assert.Equal(t, int64(4), rows[0].LikeCount)
	assert.Nil(t, rows[0].AuthorImage)
	require.NotNil(t, rows[0].Image)
	assert.Equal(t, "/uploads/x.png", *rows[0].Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListFeed_StorageError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT posts\.id AS post_id`).WillReturnError(errors.New("server closed the connection"))

	rows, err := repo.ListFeed(context.Background())
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, models.ErrStorage)
	assert.NotContains(t, err.(*models.AppError).Message, "server closed")
}

func TestLikeRepository_Toggle_UnlikeIsSingleDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE account_id = $1 AND post_id = $2`)).
		WithArgs(7, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := repo.Toggle(context.Background(), 7, 9)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Create_ForeignKeyViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, Message: `insert or update on table "comments" violates foreign key constraint`})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Comment{AccountID: 1, PostID: 42, Content: "hi"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "accounts"`)).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Account{Name: "Dr. Grey", Email: "grey@example.com", Password: "x"})
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.True(t, isForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: accounts.email")))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestQueryTimeoutSurfacesAsStorageError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db, WithQueryTimeout(20*time.Millisecond))

	mock.ExpectQuery(`SELECT comments\.id AS comment_id`).
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id"}))

	_, err := repo.ListByPost(context.Background(), 1)
	assert.ErrorIs(t, err, models.ErrStorage)
}
