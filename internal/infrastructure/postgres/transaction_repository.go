package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación sobre PostgreSQL del historial append-only
// de transacciones de inventario (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción de inventario. No existe Update ni Delete.
func (r *TransactionRepo) Create(tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions (id, item_id, site_id, type, quantity, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if tx.CreatedBy != "" {
		createdBy = &tx.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ItemID, tx.SiteID, tx.Type, tx.Quantity, tx.Note, createdBy, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// ListByItem historial de un ítem, más reciente primero.
func (r *TransactionRepo) ListByItem(itemID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, item_id, site_id, type, quantity, note, created_by, created_at
		FROM inventory_transactions WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, itemID, limit, offset)
}

// ListBySite historial de una sede, más reciente primero.
func (r *TransactionRepo) ListBySite(siteID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, item_id, site_id, type, quantity, note, created_by, created_at
		FROM inventory_transactions WHERE site_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, siteID, limit, offset)
}

func (r *TransactionRepo) list(query string, args ...any) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		var note, createdBy *string
		if err := rows.Scan(&t.ID, &t.ItemID, &t.SiteID, &t.Type, &t.Quantity, &note, &createdBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		if note != nil {
			t.Note = *note
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
