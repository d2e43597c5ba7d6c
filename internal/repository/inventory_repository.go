package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invento/inventory-api/internal/domain"
)

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	ListFilter
	Status   domain.InventoryStatus
	ItemType domain.ItemType
}

// InventoryRepository manages tracked items.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, filter InventoryFilter) (Page[domain.InventoryItem], error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository builds the repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

const inventoryColumns = `id, office_id, name, description, qty, item_type, serial_number, bill_number, value,
                          is_reusable, remarks, status, issued_to, issued_by, issued_date, return_date,
                          created_at, updated_at`

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        INSERT INTO inventory (office_id, name, description, qty, item_type, serial_number, bill_number,
                               value, is_reusable, remarks, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		item.OfficeID,
		item.Name,
		item.Description,
		item.Qty,
		item.ItemType,
		item.SerialNumber,
		item.BillNumber,
		item.Value,
		item.IsReusable,
		item.Remarks,
		item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// Update writes every mutable column, including the issue fields, so lifecycle
// transitions made on the domain value are persisted as a whole.
func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        UPDATE inventory SET name=$1, description=$2, qty=$3, item_type=$4, serial_number=$5, bill_number=$6,
                             value=$7, is_reusable=$8, remarks=$9, status=$10, issued_to=$11, issued_by=$12,
                             issued_date=$13, return_date=$14, updated_at=NOW()
        WHERE id=$15
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Qty,
		item.ItemType,
		item.SerialNumber,
		item.BillNumber,
		item.Value,
		item.IsReusable,
		item.Remarks,
		item.Status,
		item.IssuedTo,
		item.IssuedBy,
		item.IssuedDate,
		item.ReturnDate,
		item.ID,
	).Scan(&item.UpdatedAt)
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.pool, `DELETE FROM inventory WHERE id=$1`, id)
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item, err := scanInventory(r.pool.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id=$1`, id), nil)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context, filter InventoryFilter) (Page[domain.InventoryItem], error) {
	w := newWhere().
		eq("office_id", filter.OfficeID).
		eq("status", string(filter.Status)).
		eq("item_type", string(filter.ItemType)).
		search(filter.Search, "name", "serial_number", "bill_number")
	base := `SELECT ` + inventoryColumns + `, COUNT(*) OVER() FROM inventory`
	rows, err := r.pool.Query(ctx, w.paged(base, "created_at DESC", filter.ListFilter), w.args...)
	if err != nil {
		return Page[domain.InventoryItem]{}, err
	}
	defer rows.Close()

	items, total, err := collectCounted(rows, func(row pgx.Rows, total *int) (domain.InventoryItem, error) {
		return scanInventory(row, total)
	})
	if err != nil {
		return Page[domain.InventoryItem]{}, err
	}
	return NewPage(items, total, filter.ListFilter), nil
}

func scanInventory(row pgx.Row, total *int) (domain.InventoryItem, error) {
	var item domain.InventoryItem
	dest := []any{
		&item.ID,
		&item.OfficeID,
		&item.Name,
		&item.Description,
		&item.Qty,
		&item.ItemType,
		&item.SerialNumber,
		&item.BillNumber,
		&item.Value,
		&item.IsReusable,
		&item.Remarks,
		&item.Status,
		&item.IssuedTo,
		&item.IssuedBy,
		&item.IssuedDate,
		&item.ReturnDate,
		&item.CreatedAt,
		&item.UpdatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}
	err := row.Scan(dest...)
	return item, err
}
