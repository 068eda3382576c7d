package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestListQuery_Normalized(t *testing.T) {
	tests := []struct {
		name          string
		in            ListQuery
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", ListQuery{}, 1, DefaultPageSize},
		{"negative page clamps to one", ListQuery{Page: -3, Limit: 10}, 1, 10},
		{"zero page clamps to one", ListQuery{Page: 0, Limit: 10}, 1, 10},
		{"zero limit uses default", ListQuery{Page: 2}, 2, DefaultPageSize},
		{"oversized limit is capped", ListQuery{Page: 1, Limit: 5000}, 1, MaxPageSize},
		{"valid values pass through", ListQuery{Page: 7, Limit: 20}, 7, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in.Normalized()
			assert.Equal(t, tt.expectedPage, q.Page)
			assert.Equal(t, tt.expectedLimit, q.Limit)
			// Filters are untouched by normalization.
			assert.Equal(t, tt.in.Search, q.Search)
			assert.Equal(t, tt.in.Category, q.Category)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeLike(tt.in), "input=%q", tt.in)
	}
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, ListQuery{Page: 1, Limit: 5}.Offset())
	assert.Equal(t, 5, ListQuery{Page: 2, Limit: 5}.Offset())
	assert.Equal(t, 40, ListQuery{Page: 5, Limit: 10}.Offset())
}

func TestListQuery_Pages(t *testing.T) {
	q := ListQuery{Page: 1, Limit: 5}

	tests := []struct {
		total    int64
		expected int
	}{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 2},
		{10, 2},
		{11, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, q.Pages(tt.total), "total=%d", tt.total)
	}
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// The filter must render as (search OR) AND category so an uncategorized
// post can never sneak through a category filter.
func TestListQuery_FilterSQLShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	q := ListQuery{Page: 1, Limit: 5, Search: "Go", Category: "tech"}.Normalized()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "posts" WHERE (LOWER(title) LIKE $1 ESCAPE '\' OR LOWER(content) LIKE $2 ESCAPE '\') AND category = $3`)).
		WithArgs("%go%", "%go%", "tech").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	total, err := repo.Count(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListQuery_WindowSQLShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	q := ListQuery{Page: 3, Limit: 5}.Normalized()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "posts" ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`)).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow("abc", "Post"))

	posts, err := repo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "abc", posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeleteSQLShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id = $1`)).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 0)) // zero rows affected is still success
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "abc")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
