package models

import (
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps Offset well inside a 32-bit int.
	MaxPage = 10_000_000
)

// PageQuery is a 1-based page request with an optional free-text filter.
type PageQuery struct {
	Page     int
	PageSize int
	Q        string
}

type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ParsePageQuery reads raw query values. A missing or non-numeric page size
// falls back to DefaultPageSize; numeric values are clamped to [1, MaxPageSize].
// Pages are clamped to [1, MaxPage].
func ParsePageQuery(page, pageSize, q string) PageQuery {
	query := PageQuery{Page: DefaultPage, PageSize: DefaultPageSize, Q: strings.TrimSpace(q)}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil {
		query.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(pageSize)); err == nil {
		if n < 1 {
			n = 1
		}
		query.PageSize = n
	}
	return query.Normalize()
}

// Normalize treats a zero PageSize as unset and uses DefaultPageSize.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	switch {
	case q.PageSize == 0:
		q.PageSize = DefaultPageSize
	case q.PageSize < 1:
		q.PageSize = 1
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Q = strings.TrimSpace(q.Q)
	return q
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// TotalPages is ceil(total/pageSize) with a floor of one page.
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		return 1
	}
	return pages
}

func NewPage[T any](data []T, q PageQuery, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:       data,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, q.PageSize),
	}
}

// MapPage converts the rows of a page while keeping its counters.
func MapPage[T, R any](p Page[T], fn func([]T) []R) Page[R] {
	return Page[R]{
		Data:       fn(p.Data),
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}
