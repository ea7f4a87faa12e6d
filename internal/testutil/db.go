// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"medconnect/internal/database"
	"medconnect/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB returns an isolated in-memory database with the full schema and
// foreign keys enforced. The single connection keeps the memory database alive
// and serialises writers the way row locks would.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// CreateAccount inserts an account with a placeholder password hash.
func CreateAccount(t *testing.T, db *gorm.DB, name string) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:           name,
		Email:          fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Specialization: "Cardiology",
		Profession:     "Cardiologist",
		Password:       "$2a$10$placeholder",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

// CreatePost inserts a post authored by accountID.
func CreatePost(t *testing.T, db *gorm.DB, accountID uint, content string) *models.Post {
	t.Helper()

	post := &models.Post{AccountID: accountID, Content: content}
	if err := db.Omit("Account").Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}
