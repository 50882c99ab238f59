package entity

import (
	"errors"
	"math"
	"strings"
)

var ErrInvalidSort = errors.New("invalid sort")

// PageRequest is a zero-based page index and a page size.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the number of rows preceding the requested page. It saturates at
// math.MaxInt so a huge page index reads as past the end instead of wrapping.
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of an ordered result set plus its metadata.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
	IsLast        bool
}

// NewPage builds page metadata. An empty result has zero pages and is the last page.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		IsLast:        req.Page >= totalPages-1,
	}
}

// MapPage converts the content of a page, keeping its metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(p.Content))
	for _, v := range p.Content {
		out = append(out, fn(v))
	}
	return Page[R]{
		Content:       out,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		IsLast:        p.IsLast,
	}
}

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTitle     SortField = "title"
	SortByID        SortField = "id"
)

// Sort is an ordering over todo cards.
type Sort struct {
	Field SortField
	Desc  bool
}

// DefaultSort lists newest cards first.
var DefaultSort = Sort{Field: SortByCreatedAt, Desc: true}

// ParseSort reads "field" or "field,asc|desc". An empty string yields DefaultSort and
// the direction defaults to descending.
func ParseSort(s string) (Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort, nil
	}
	field, dir, _ := strings.Cut(s, ",")
	out := Sort{Desc: true}
	switch SortField(strings.TrimSpace(field)) {
	case SortByCreatedAt:
		out.Field = SortByCreatedAt
	case SortByUpdatedAt:
		out.Field = SortByUpdatedAt
	case SortByTitle:
		out.Field = SortByTitle
	case SortByID:
		out.Field = SortByID
	default:
		return Sort{}, ErrInvalidSort
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "desc":
	case "asc":
		out.Desc = false
	default:
		return Sort{}, ErrInvalidSort
	}
	return out, nil
}
