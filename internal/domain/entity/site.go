package entity

import "time"

// Tipos de sede que pueden almacenar stock.
const (
	SiteTypeWarehouse = "warehouse"
	SiteTypeOffice    = "office"
	SiteTypeClient    = "client"
	SiteTypeProject   = "project"
)

// Site representa una sede física o lógica donde se almacena inventario.
// ClientID solo aplica para sedes de tipo client/project.
type Site struct {
	ID        string
	Name      string
	Type      string
	Active    bool
	ClientID  string // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
