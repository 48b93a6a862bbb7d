package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un producto inventariable (multi-sede).
// La cantidad total NO se guarda aquí: se deriva sumando SiteStock por sede.
type InventoryItem struct {
	ID          string
	Name        string
	SKU         string // opcional; único cuando no está vacío
	Category    string
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	MinQuantity int64  // umbral de stock bajo (señal de reposición)
	VendorID    string // opcional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
