package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Periodicidades de gasto recurrente de cliente.
const (
	PeriodicityMonthly   = "monthly"
	PeriodicityQuarterly = "quarterly"
	PeriodicityYearly    = "yearly"
	PeriodicityPercent   = "percent" // porcentaje del MRR del cliente
)

// ClientExpense representa un gasto recurrente asociado a un cliente.
// Para Periodicity=percent, Amount es el porcentaje (0-100) aplicado sobre el MRR.
type ClientExpense struct {
	ID          string
	ClientID    string
	Concept     string
	Periodicity string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// MonthlyEquivalent normaliza el gasto a su equivalente mensual:
// mensual tal cual, trimestral/3, anual/12, porcentaje*MRR/100.
func (e ClientExpense) MonthlyEquivalent(mrr decimal.Decimal) decimal.Decimal {
	switch e.Periodicity {
	case PeriodicityQuarterly:
		return e.Amount.Div(decimal.NewFromInt(3))
	case PeriodicityYearly:
		return e.Amount.Div(decimal.NewFromInt(12))
	case PeriodicityPercent:
		return e.Amount.Mul(mrr).Div(decimal.NewFromInt(100))
	default:
		return e.Amount
	}
}
