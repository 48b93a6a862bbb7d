package entity

import "time"

// Partner representa un socio comercial con participación sobre la utilidad de uno o más clientes.
type Partner struct {
	ID           string
	Name         string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
