package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, string) (*models.Post, error)
	listFn    func(context.Context, repository.ListQuery) ([]*models.Post, error)
	countFn   func(context.Context, repository.ListQuery) (int64, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, q repository.ListQuery) ([]*models.Post, error) {
	return s.listFn(ctx, q)
}
func (s *postRepoStub) Count(ctx context.Context, q repository.ListQuery) (int64, error) {
	return s.countFn(ctx, q)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ string) (*models.Post, error) { return &models.Post{}, nil },
		listFn:    func(_ context.Context, _ repository.ListQuery) ([]*models.Post, error) { return nil, nil },
		countFn:   func(_ context.Context, _ repository.ListQuery) (int64, error) { return 0, nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ string) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func strptr(s string) *string { return &s }

func TestCreatePost_Validation(t *testing.T) {
	svc := NewPostService(noopPostRepo())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreatePostInput{Content: "body"})
	assertValidationError(t, err)

	_, err = svc.CreatePost(ctx, CreatePostInput{Title: "title"})
	assertValidationError(t, err)

	longTitle := make([]byte, maxTitleLen+1)
	for i := range longTitle {
		longTitle[i] = 'a'
	}
	_, err = svc.CreatePost(ctx, CreatePostInput{Title: string(longTitle), Content: "body"})
	assertValidationError(t, err)
}

func TestCreatePost_CategoryIsOptional(t *testing.T) {
	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, post *models.Post) error {
		created = post
		post.ID = "generated-id"
		return nil
	}
	svc := NewPostService(repo)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{Title: "A", Content: "B"})
	require.NoError(t, err)
	assert.Equal(t, "generated-id", post.ID)
	assert.Empty(t, created.Category)
}

func TestListPosts_NormalizesAndComputesPages(t *testing.T) {
	repo := noopPostRepo()
	var seenQuery repository.ListQuery
	repo.countFn = func(_ context.Context, q repository.ListQuery) (int64, error) {
		return 12, nil
	}
	repo.listFn = func(_ context.Context, q repository.ListQuery) ([]*models.Post, error) {
		seenQuery = q
		return []*models.Post{{ID: "1"}, {ID: "2"}}, nil
	}
	svc := NewPostService(repo)

	result, err := svc.ListPosts(context.Background(), ListPostsInput{Page: -1, Limit: 0, Search: "x"})
	require.NoError(t, err)

	assert.Equal(t, 1, seenQuery.Page)
	assert.Equal(t, repository.DefaultPageSize, seenQuery.Limit)
	assert.Equal(t, "x", seenQuery.Search)

	assert.EqualValues(t, 12, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 3, result.Pages) // ceil(12/5)
	assert.Len(t, result.Posts, 2)
}

func TestListPosts_EmptyResultIsNotAnError(t *testing.T) {
	svc := NewPostService(noopPostRepo())

	result, err := svc.ListPosts(context.Background(), ListPostsInput{})
	require.NoError(t, err)
	assert.NotNil(t, result.Posts, "posts must serialize as [], not null")
	assert.Empty(t, result.Posts)
	assert.EqualValues(t, 0, result.Total)
	assert.Equal(t, 0, result.Pages, "pages is zero iff total is zero")
}

func TestListPosts_CountFailureSurfaces(t *testing.T) {
	repo := noopPostRepo()
	repo.countFn = func(_ context.Context, _ repository.ListQuery) (int64, error) {
		return 0, errors.New("store unreachable")
	}
	svc := NewPostService(repo)

	_, err := svc.ListPosts(context.Background(), ListPostsInput{})
	require.Error(t, err)
}

func TestUpdatePost_MergesOnlyProvidedFields(t *testing.T) {
	repo := noopPostRepo()
	stored := &models.Post{ID: "p1", Title: "Old title", Content: "Old content", Category: "tech"}
	repo.getByIDFn = func(_ context.Context, id string) (*models.Post, error) {
		require.Equal(t, "p1", id)
		return stored, nil
	}
	var saved *models.Post
	repo.updateFn = func(_ context.Context, post *models.Post) error {
		saved = post
		return nil
	}
	svc := NewPostService(repo)

	post, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		ID:    "p1",
		Title: strptr("New title"),
	})
	require.NoError(t, err)

	assert.Equal(t, "New title", post.Title)
	assert.Equal(t, "Old content", post.Content, "omitted fields retain prior values")
	assert.Equal(t, "tech", post.Category)
	assert.Equal(t, "p1", saved.ID)
}

func TestUpdatePost_CanClearCategory(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ string) (*models.Post, error) {
		return &models.Post{ID: "p1", Title: "T", Content: "C", Category: "tech"}, nil
	}
	svc := NewPostService(repo)

	post, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		ID:       "p1",
		Category: strptr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, post.Category)
}

func TestUpdatePost_RejectsEmptyRequiredFields(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ string) (*models.Post, error) {
		return &models.Post{ID: "p1", Title: "T", Content: "C"}, nil
	}
	svc := NewPostService(repo)
	ctx := context.Background()

	_, err := svc.UpdatePost(ctx, UpdatePostInput{ID: "p1", Title: strptr("")})
	assertValidationError(t, err)

	_, err = svc.UpdatePost(ctx, UpdatePostInput{ID: "p1", Content: strptr("")})
	assertValidationError(t, err)
}

func TestUpdatePost_NotFound(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id string) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewPostService(repo)

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{ID: "ghost"})
	assert.True(t, models.IsNotFound(err))
}

func TestDeletePost_PassesThrough(t *testing.T) {
	repo := noopPostRepo()
	var deletedID string
	repo.deleteFn = func(_ context.Context, id string) error {
		deletedID = id
		return nil
	}
	svc := NewPostService(repo)

	require.NoError(t, svc.DeletePost(context.Background(), "p9"))
	assert.Equal(t, "p9", deletedID)
}
