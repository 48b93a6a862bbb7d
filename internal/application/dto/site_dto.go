package dto

import "time"

// CreateSiteRequest body para POST /api/sites.
type CreateSiteRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // warehouse | office | client | project
	ClientID string `json:"client_id,omitempty"`
}

// UpdateSiteRequest body para PUT /api/sites/:id.
type UpdateSiteRequest struct {
	Name   *string `json:"name,omitempty"`
	Type   *string `json:"type,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// EmptySiteRequest body para POST /api/sites/:id/empty — traslada todo el stock
// de la sede a otra sede activa (paso previo obligatorio para eliminarla).
type EmptySiteRequest struct {
	ToSiteID string `json:"to_site_id"`
}

// SiteResponse representación de una sede.
type SiteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	ClientID  string    `json:"client_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SiteListResponse listado paginado de sedes.
type SiteListResponse struct {
	Items []SiteResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
