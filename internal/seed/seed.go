// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Categories used by the demo client's filter dropdown. The empty entry
// produces uncategorized posts.
var Categories = []string{"tech", "news", "sports", ""}

// Options controls how much data Seed generates.
type Options struct {
	Count   int
	MaxDays int // spread of created_at timestamps into the past
}

// Factory builds posts and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.Count <= 0 {
		opts.Count = 25
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildPost constructs a post without persisting it. Useful for batching.
func (f *Factory) BuildPost(overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		Category: Categories[f.rng.Intn(len(Categories))],
	}

	// realistic created_at spread
	daysBack := f.rng.Intn(f.opts.MaxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	return f.db.Create(&posts).Error
}

// Run generates and persists the configured number of demo posts.
func (f *Factory) Run() error {
	posts := make([]*models.Post, 0, f.opts.Count)
	for i := 0; i < f.opts.Count; i++ {
		posts = append(posts, f.BuildPost())
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	return nil
}
