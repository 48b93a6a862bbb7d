package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una propuesta comercial.
const (
	ProposalDraft    = "draft"
	ProposalSent     = "sent"
	ProposalSigned   = "signed"
	ProposalDeclined = "declined"
)

// Proposal representa una propuesta comercial con PDF y flujo de firma.
// La firma es por posesión del SignToken (enlace enviado al cliente), no criptográfica.
type Proposal struct {
	ID         string
	ClientID   string
	Title      string
	Amount     decimal.Decimal
	Status     string
	PDFURL     string
	SignToken  string // se genera al enviar; vacío en draft
	SignerName string
	SignedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
