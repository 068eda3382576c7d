package repository

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an isolated in-memory database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&models.Post{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// mustCreatePost persists a post with a fixed timestamp so ordering
// assertions stay deterministic.
func mustCreatePost(t *testing.T, db *gorm.DB, title, content, category string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     title,
		Content:   content,
		Category:  category,
		CreatedAt: createdAt,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return post
}
