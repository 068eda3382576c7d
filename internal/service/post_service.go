// Package service contains the application's business logic.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// PostService coordinates validation and persistence for posts.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields accepted when creating a post.
type CreatePostInput struct {
	Title    string
	Content  string
	Category string
}

// UpdatePostInput carries a partial update. Nil fields are left untouched
// on the stored record; ID and CreatedAt never change.
type UpdatePostInput struct {
	ID       string
	Title    *string
	Content  *string
	Category *string
}

// ListPostsInput mirrors the listing endpoint's query parameters.
type ListPostsInput struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

// CreatePost validates required fields and persists a new post. The store
// assigns the ID and CreatedAt.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	}
	err := s.postRepo.Create(ctx, post)
	observability.RecordMutation("create", err)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns one page of posts matching the filter plus the
// total/page-count metadata. Zero matches is a valid, empty result.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*models.ListResult, error) {
	q := repository.ListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Search:   in.Search,
		Category: in.Category,
	}.Normalized()

	observability.RecordList(q.Search != "", q.Category != "")

	total, err := s.postRepo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &models.ListResult{
		Posts: posts,
		Total: total,
		Page:  q.Page,
		Pages: q.Pages(total),
	}, nil
}

// ListRecent returns the newest posts without pagination metadata, capped
// at the maximum page size. This backs the legacy unpaginated feed.
func (s *PostService) ListRecent(ctx context.Context) ([]*models.Post, error) {
	q := repository.ListQuery{Page: 1, Limit: repository.MaxPageSize}
	posts, err := s.postRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// GetPost returns the post with the given id, or a NOT_FOUND error.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost merges the provided fields into the existing record. Unknown
// ids surface as NOT_FOUND.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = *in.Content
	}
	if in.Category != nil {
		post.Category = *in.Category
	}

	err = s.postRepo.Update(ctx, post)
	observability.RecordMutation("update", err)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post. Deleting an id that never existed, or one
// already deleted, still reports success.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	err := s.postRepo.Delete(ctx, id)
	observability.RecordMutation("delete", err)
	return err
}
