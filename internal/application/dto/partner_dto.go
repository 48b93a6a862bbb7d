package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartnerRequest body para POST /api/partners.
type CreatePartnerRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// UpdatePartnerRequest body para PUT /api/partners/:id.
type UpdatePartnerRequest struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
}

// PartnerResponse representación de un socio en respuestas.
type PartnerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PartnerListResponse listado paginado de socios.
type PartnerListResponse struct {
	Items []PartnerResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PartnerPayoutLine es el pago que recibe el socio en la cascada de UN cliente.
// Se calcula contra la cascada completa de ese cliente, no contra el acuerdo aislado.
type PartnerPayoutLine struct {
	ClientID    string          `json:"client_id"`
	AgreementID string          `json:"agreement_id"`
	Payout      decimal.Decimal `json:"payout"`
}

// PartnerSummaryResponse ingreso mensual total de un socio sumado sobre todos sus clientes.
type PartnerSummaryResponse struct {
	PartnerID    string              `json:"partner_id"`
	TotalMonthly decimal.Decimal     `json:"total_monthly"`
	Lines        []PartnerPayoutLine `json:"lines"`
}
