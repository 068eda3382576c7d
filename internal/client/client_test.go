package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the client actually sent.
type recordedRequest struct {
	method string
	path   string
	query  string
	body   []byte
}

func newStubServer(t *testing.T, status int, respond any) (*Client, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(respond)
	}))
	t.Cleanup(srv.Close)

	return NewWithHTTPClient(srv.URL, srv.Client()), rec
}

func TestListPosts_QueryEncoding(t *testing.T) {
	c, rec := newStubServer(t, http.StatusOK, models.ListResult{
		Posts: []*models.Post{{ID: "p1"}},
		Total: 1,
		Page:  2,
		Pages: 1,
	})

	result, err := c.ListPosts(context.Background(), ListParams{
		Page:     2,
		Limit:    5,
		Search:   "go generics",
		Category: "tech",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/posts", rec.path)
	assert.Equal(t, "category=tech&limit=5&page=2&search=go+generics", rec.query)
	assert.Len(t, result.Posts, 1)
	assert.EqualValues(t, 1, result.Total)
}

func TestListPosts_ZeroParamsOmitted(t *testing.T) {
	c, rec := newStubServer(t, http.StatusOK, models.ListResult{Posts: []*models.Post{}})

	_, err := c.ListPosts(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Empty(t, rec.query)
}

func TestCreatePost_SendsBody(t *testing.T) {
	c, rec := newStubServer(t, http.StatusCreated, models.Post{ID: "p1", Title: "A"})

	post, err := c.CreatePost(context.Background(), CreateParams{
		Title:   "A",
		Content: "B",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/posts", rec.path)
	assert.JSONEq(t, `{"title":"A","content":"B"}`, string(rec.body))
	assert.Equal(t, "p1", post.ID)
}

func TestUpdatePost_OmitsNilFields(t *testing.T) {
	c, rec := newStubServer(t, http.StatusOK, models.Post{ID: "p1", Title: "A2"})

	title := "A2"
	post, err := c.UpdatePost(context.Background(), "p1", UpdateParams{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/posts/p1", rec.path)
	assert.JSONEq(t, `{"title":"A2"}`, string(rec.body))
	assert.Equal(t, "A2", post.Title)
}

func TestDeletePost(t *testing.T) {
	c, rec := newStubServer(t, http.StatusOK, map[string]string{"message": "Post deleted"})

	require.NoError(t, c.DeletePost(context.Background(), "p1"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/posts/p1", rec.path)
}

func TestGetPost_NotFound(t *testing.T) {
	c, _ := newStubServer(t, http.StatusNotFound, models.ErrorResponse{
		Error: "Post with ID ghost not found",
		Code:  "NOT_FOUND",
	})

	post, err := c.GetPost(context.Background(), "ghost")
	require.Error(t, err)
	assert.Nil(t, post)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Body.Code)
	assert.Contains(t, apiErr.Error(), "status 404")
}

func TestIsNotFound_OtherErrors(t *testing.T) {
	c, _ := newStubServer(t, http.StatusInternalServerError, models.ErrorResponse{
		Error: "boom",
		Code:  "INTERNAL_ERROR",
	})

	_, err := c.GetPost(context.Background(), "p1")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}
