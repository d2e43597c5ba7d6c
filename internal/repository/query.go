package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pagination defaults applied to every list endpoint.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListFilter captures the common list parameters. An empty OfficeID means no
// office restriction; callers derive it from the request scope.
type ListFilter struct {
	OfficeID string
	Search   string
	Page     int
	Limit    int
}

// Window returns the normalized page, limit and row offset.
func (f ListFilter) Window() (page, limit, offset int) {
	page, limit = f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit
}

// Page is one slice of a listing plus the total number of matching rows.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

// NewPage builds a page for filter, never returning nil items.
func NewPage[T any](items []T, total int, filter ListFilter) Page[T] {
	page, limit, _ := filter.Window()
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: page, Limit: limit}
}

type where struct {
	clauses []string
	args    []any
}

func newWhere() *where {
	return &where{clauses: []string{"1=1"}}
}

// eq adds "column = $n" when value is non-empty.
func (w *where) eq(column, value string) *where {
	if strings.TrimSpace(value) == "" {
		return w
	}
	w.args = append(w.args, strings.TrimSpace(value))
	w.clauses = append(w.clauses, fmt.Sprintf("%s = $%d", column, len(w.args)))
	return w
}

// search adds a case-insensitive substring match over columns.
func (w *where) search(term string, columns ...string) *where {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return w
	}
	w.args = append(w.args, "%"+strings.ToLower(term)+"%")
	placeholder := fmt.Sprintf("$%d", len(w.args))
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE %s", col, placeholder)
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
	return w
}

func (w *where) String() string {
	return strings.Join(w.clauses, " AND ")
}

// paged renders base with the where clause, an order and the filter window.
// base must select COUNT(*) OVER() as its last column.
func (w *where) paged(base, orderBy string, filter ListFilter) string {
	_, limit, offset := filter.Window()
	return fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT %d OFFSET %d`, base, w.String(), orderBy, limit, offset)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// execOne runs a statement that must touch exactly one row, reporting
// pgx.ErrNoRows otherwise.
func execOne(ctx context.Context, db execer, query string, args ...any) error {
	cmd, err := db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// collectCounted scans rows whose last column is COUNT(*) OVER().
func collectCounted[T any](rows pgx.Rows, scan func(pgx.Rows, *int) (T, error)) ([]T, int, error) {
	var (
		out   []T
		total int
	)
	for rows.Next() {
		item, err := scan(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, rows.Err()
}
