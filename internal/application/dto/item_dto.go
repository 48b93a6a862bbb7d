package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku,omitempty"`
	Category    string          `json:"category,omitempty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	MinQuantity int64           `json:"min_quantity"`
	VendorID    string          `json:"vendor_id,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id.
type UpdateItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	SKU         *string          `json:"sku,omitempty"`
	Category    *string          `json:"category,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	MinQuantity *int64           `json:"min_quantity,omitempty"`
	VendorID    *string          `json:"vendor_id,omitempty"`
}

// ItemResponse representación de un ítem. TotalQuantity y LowStock son
// derivados en tiempo de lectura, nunca almacenados.
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Category      string          `json:"category,omitempty"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MinQuantity   int64           `json:"min_quantity"`
	VendorID      string          `json:"vendor_id,omitempty"`
	TotalQuantity int64           `json:"total_quantity"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse listado paginado de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
