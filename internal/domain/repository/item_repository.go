package repository

import "github.com/tu-usuario/backoffice-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para ítems de inventario.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	List(limit, offset int) ([]*entity.InventoryItem, error)
	Delete(id string) error
}
