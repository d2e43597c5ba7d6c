package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFilterWindow(t *testing.T) {
	page, limit, offset := ListFilter{}.Window()
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)
	assert.Equal(t, 0, offset)

	page, limit, offset = ListFilter{Page: 3, Limit: 25}.Window()
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)

	_, limit, _ = ListFilter{Limit: 10_000}.Window()
	assert.Equal(t, MaxPageSize, limit)
}

func TestWhereBuilder(t *testing.T) {
	w := newWhere().eq("office_id", "O1").eq("status", "").search(" Lap ", "name", "serial_number")
	assert.Equal(t, "1=1 AND office_id = $1 AND (LOWER(name) LIKE $2 OR LOWER(serial_number) LIKE $2)", w.String())
	assert.Equal(t, []any{"O1", "%lap%"}, w.args)

	query := w.paged("SELECT id FROM inventory", "created_at DESC", ListFilter{Page: 2, Limit: 5})
	assert.Contains(t, query, "ORDER BY created_at DESC LIMIT 5 OFFSET 5")
}

func TestNewPageNeverNil(t *testing.T) {
	p := NewPage[string](nil, 0, ListFilter{})
	assert.NotNil(t, p.Items)
	assert.Equal(t, 1, p.Page)
}
