package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAgreementRequest body para POST /api/clients/:id/revenue-shares.
// Type es "percentage" o "flat_rate"; Value es el porcentaje (0-100) o el monto fijo.
type CreateAgreementRequest struct {
	PartnerID string          `json:"partner_id"`
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	StartDate string          `json:"start_date"`         // YYYY-MM-DD
	EndDate   *string         `json:"end_date,omitempty"` // YYYY-MM-DD
}

// UpdateAgreementRequest body para PUT /api/revenue-shares/:id.
// No toca Priority: el orden solo cambia vía reorder.
type UpdateAgreementRequest struct {
	Type      *string          `json:"type,omitempty"`
	Value     *decimal.Decimal `json:"value,omitempty"`
	StartDate *string          `json:"start_date,omitempty"`
	EndDate   *string          `json:"end_date,omitempty"` // "" limpia la fecha de fin
}

// ReorderRequest body para POST /api/clients/:id/revenue-shares/reorder.
type ReorderRequest struct {
	AgreementID string `json:"agreement_id"`
	NewIndex    int    `json:"new_index"`
}

// AgreementResponse representación de un acuerdo en respuestas.
type AgreementResponse struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"client_id"`
	PartnerID string          `json:"partner_id"`
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	Priority  int             `json:"priority"`
	StartDate time.Time       `json:"start_date"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
}

// WaterfallLine es una línea de la cascada de un cliente: acuerdo + pago calculado.
type WaterfallLine struct {
	AgreementID string          `json:"agreement_id"`
	PartnerID   string          `json:"partner_id"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
	Priority    int             `json:"priority"`
	Payout      decimal.Decimal `json:"payout"`
}

// WaterfallResponse cascada completa de un cliente para su tarjeta resumen.
// Siempre recalculada; nada de esto se persiste.
type WaterfallResponse struct {
	ClientID    string          `json:"client_id"`
	MRR         decimal.Decimal `json:"mrr"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	Lines       []WaterfallLine `json:"lines"`
	TotalPayout decimal.Decimal `json:"total_payout"`
	Remainder   decimal.Decimal `json:"remainder"`
}
