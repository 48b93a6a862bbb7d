package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name         string          `json:"name"`
	ContactEmail string          `json:"contact_email,omitempty"`
	MRR          decimal.Decimal `json:"mrr"`
}

// UpdateClientRequest body para PUT /api/clients/:id (campos opcionales).
type UpdateClientRequest struct {
	Name         *string          `json:"name,omitempty"`
	ContactEmail *string          `json:"contact_email,omitempty"`
	MRR          *decimal.Decimal `json:"mrr,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// ClientResponse representación de un cliente en respuestas.
type ClientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ContactEmail string          `json:"contact_email,omitempty"`
	MRR          decimal.Decimal `json:"mrr"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateExpenseRequest body para POST /api/clients/:id/expenses.
type CreateExpenseRequest struct {
	Concept     string          `json:"concept"`
	Periodicity string          `json:"periodicity"` // monthly | quarterly | yearly | percent
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseResponse representación de un gasto recurrente.
type ExpenseResponse struct {
	ID                string          `json:"id"`
	ClientID          string          `json:"client_id"`
	Concept           string          `json:"concept"`
	Periodicity       string          `json:"periodicity"`
	Amount            decimal.Decimal `json:"amount"`
	MonthlyEquivalent decimal.Decimal `json:"monthly_equivalent"`
	CreatedAt         time.Time       `json:"created_at"`
}
