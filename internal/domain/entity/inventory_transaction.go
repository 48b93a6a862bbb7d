package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionCheckIn  = "check_in"
	TransactionCheckOut = "check_out"
)

// InventoryTransaction es el registro inmutable de auditoría de un cambio de stock.
// Append-only: se crea como efecto de check-in/check-out/traslado y nunca se
// actualiza ni elimina. Un traslado produce dos transacciones (check_out en
// origen y check_in en destino) con nota identificando la sede de origen.
//
// SiteID es puntero solo por filas legacy sin sede; toda operación nueva la exige.
type InventoryTransaction struct {
	ID        string
	ItemID    string
	SiteID    *string
	Type      string
	Quantity  int64 // siempre positivo; el tipo indica la dirección
	Note      string
	CreatedBy string
	CreatedAt time.Time
}
