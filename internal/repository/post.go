// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, q ListQuery) ([]*models.Post, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create")()
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	defer observability.TrackQuery("get")()

	var post models.Post
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

// List returns the page window of records matching the query's filter,
// newest first with the record ID breaking timestamp ties so page
// boundaries stay deterministic. An empty window is not an error.
func (r *postRepository) List(ctx context.Context, q ListQuery) ([]*models.Post, error) {
	defer observability.TrackQuery("list")()

	var posts []*models.Post
	err := q.scope(r.db.WithContext(ctx).Model(&models.Post{})).
		Order("created_at DESC, id DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the total number of records matching the query's filter,
// independent of the pagination window.
func (r *postRepository) Count(ctx context.Context, q ListQuery) (int64, error) {
	defer observability.TrackQuery("count")()

	var total int64
	err := q.scope(r.db.WithContext(ctx).Model(&models.Post{})).
		Count(&total).Error
	return total, err
}

// Update writes all fields of an existing record. A record deleted since
// it was read is reported as not found rather than re-created.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update")()

	res := r.db.WithContext(ctx).Model(post).Select("*").Updates(post)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}

// Delete removes the record. Deleting an id that does not exist is not an
// error; the caller reports success either way.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete")()
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}
