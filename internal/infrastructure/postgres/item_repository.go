package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
// La tabla NO tiene columna de cantidad total: eso se deriva de site_stock.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem. SKU único cuando no es NULL.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, name, sku, category, cost_price, sale_price, min_quantity, vendor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullIfEmpty(item.SKU), item.Category,
		item.CostPrice, item.SalePrice, item.MinQuantity, nullIfEmpty(item.VendorID),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, name, sku, category, cost_price, sale_price, min_quantity, vendor_id, created_at, updated_at
		FROM inventory_items WHERE id = $1`
	item, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// GetBySKU obtiene un ítem por SKU.
func (r *ItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, name, sku, category, cost_price, sale_price, min_quantity, vendor_id, created_at, updated_at
		FROM inventory_items WHERE sku = $1`
	item, err := r.scanOne(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item by sku: %w", err)
	}
	return item, nil
}

// Update actualiza un ítem. Las cantidades no pasan por aquí: son del ledger.
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, sku = $3, category = $4, cost_price = $5, sale_price = $6, min_quantity = $7, vendor_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullIfEmpty(item.SKU), item.Category,
		item.CostPrice, item.SalePrice, item.MinQuantity, nullIfEmpty(item.VendorID),
		item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// List lista ítems con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT id, name, sku, category, cost_price, sale_price, min_quantity, vendor_id, created_at, updated_at
		FROM inventory_items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Delete elimina un ítem por ID.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var sku, vendorID *string
	if err := row.Scan(&it.ID, &it.Name, &sku, &it.Category, &it.CostPrice, &it.SalePrice,
		&it.MinQuantity, &vendorID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	if sku != nil {
		it.SKU = *sku
	}
	if vendorID != nil {
		it.VendorID = *vendorID
	}
	return &it, nil
}

// nullIfEmpty mapea "" a NULL para columnas opcionales con constraint único.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
