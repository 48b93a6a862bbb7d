package repository

import "github.com/tu-usuario/backoffice-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para transacciones de inventario.
// Append-only: no hay Update ni Delete.
type TransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	ListByItem(itemID string, limit, offset int) ([]*entity.InventoryTransaction, error)
	ListBySite(siteID string, limit, offset int) ([]*entity.InventoryTransaction, error)
}
