package entity

import "time"

// SiteStock representa la cantidad autoritativa de un ítem en una sede
// (clave compuesta ítem+sede). Invariante: Quantity >= 0 en todo momento.
// Una fila con cantidad 0 equivale a la ausencia de fila.
type SiteStock struct {
	ItemID    string
	SiteID    string
	Quantity  int64
	UpdatedAt time.Time
}
