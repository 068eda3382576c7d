package repository

import (
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is the page window used when the request omits a limit.
	DefaultPageSize = 5
	// MaxPageSize caps the page window a client may request.
	MaxPageSize = 100
)

// ListQuery describes one listing request: a free-text search term, an
// exact-match category filter, and a pagination window. The zero value
// normalizes to the first page of everything.
type ListQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// Normalized returns a copy with page and limit clamped to valid values.
func (q ListQuery) Normalized() ListQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

// Offset returns the number of records skipped before the page window.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pages returns the total page count for the given filtered total,
// zero when nothing matches.
func (q ListQuery) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	limit := int64(q.Limit)
	return int((total + limit - 1) / limit)
}

// escapeLike escapes LIKE metacharacters so the search term matches as a
// literal substring. Pairs with an ESCAPE '\' clause.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// scope applies the filter predicate to a query. A non-empty search term
// matches a case-insensitive substring of title or content; a non-empty
// category requires exact equality. Both conditions AND together, so a
// post with no category never matches a category filter.
func (q ListQuery) scope(db *gorm.DB) *gorm.DB {
	if q.Search != "" {
		like := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		db = db.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'`, like, like)
	}
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	return db
}
