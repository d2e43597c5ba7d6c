package dto

import (
	"github.com/invento/inventory-api/internal/repository"
)

// ListQuery carries the common list query parameters.
type ListQuery struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Search   string `query:"search" validate:"omitempty,max=100"`
	OfficeID string `query:"office_id"`
}

// Filter converts the query into a repository filter.
func (q ListQuery) Filter() repository.ListFilter {
	return repository.ListFilter{OfficeID: q.OfficeID, Search: q.Search, Page: q.Page, Limit: q.Limit}
}

// PageMeta describes the returned slice of a listing.
type PageMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NewListResponse maps each item of page with fn.
func NewListResponse[S, T any](page repository.Page[S], fn func(*S) T) ListResponse[T] {
	out := make([]T, len(page.Items))
	for i := range page.Items {
		out[i] = fn(&page.Items[i])
	}
	return ListResponse[T]{Data: out, Meta: PageMeta{Page: page.Page, Limit: page.Limit, Total: page.Total}}
}
