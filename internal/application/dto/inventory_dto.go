package dto

import "time"

// CheckInRequest body para POST /api/inventory/check-in.
type CheckInRequest struct {
	ItemID   string `json:"item_id"`
	SiteID   string `json:"site_id"`
	Quantity int64  `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// CheckOutRequest body para POST /api/inventory/check-out.
type CheckOutRequest struct {
	ItemID   string `json:"item_id"`
	SiteID   string `json:"site_id"`
	Quantity int64  `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	ItemID     string `json:"item_id"`
	FromSiteID string `json:"from_site_id"`
	ToSiteID   string `json:"to_site_id"`
	Quantity   int64  `json:"quantity"`
}

// TransactionResponse registro de auditoría de un cambio de stock.
type TransactionResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	SiteID    *string   `json:"site_id,omitempty"` // nil solo en filas legacy
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionListResponse historial paginado de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// SiteStockLine cantidad de un ítem en una sede.
type SiteStockLine struct {
	SiteID   string `json:"site_id"`
	Quantity int64  `json:"quantity"`
}

// ItemStockResponse stock de un ítem desglosado por sede, con el total derivado.
type ItemStockResponse struct {
	ItemID   string          `json:"item_id"`
	Total    int64           `json:"total"`
	LowStock bool            `json:"low_stock"`
	BySite   []SiteStockLine `json:"by_site"`
}
