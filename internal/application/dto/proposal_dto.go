package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProposalRequest body para POST /api/proposals.
type CreateProposalRequest struct {
	ClientID string          `json:"client_id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
}

// SignProposalRequest body para POST /api/proposals/sign/:token (público).
type SignProposalRequest struct {
	SignerName string `json:"signer_name"`
}

// ProposalResponse representación de una propuesta.
type ProposalResponse struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"client_id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	PDFURL     string          `json:"pdf_url,omitempty"`
	SignToken  string          `json:"sign_token,omitempty"`
	SignerName string          `json:"signer_name,omitempty"`
	SignedAt   *time.Time      `json:"signed_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProposalListResponse listado paginado de propuestas.
type ProposalListResponse struct {
	Items []ProposalResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
