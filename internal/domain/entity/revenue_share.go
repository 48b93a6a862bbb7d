package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de término de pago de un acuerdo de revenue share.
const (
	TermPercentage = "percentage" // porcentaje del remanente de utilidad
	TermFlatRate   = "flat_rate"  // monto fijo mensual
)

// PayoutTerm es el término de pago de un acuerdo: exactamente uno de
// porcentaje-del-remanente o tarifa fija. Los campos no exportados obligan a
// construirlo vía PercentageTerm/FlatRateTerm, de modo que el invariante
// "uno y solo uno" queda garantizado por construcción y no por validación en cada uso.
type PayoutTerm struct {
	kind  string
	value decimal.Decimal
}

// PercentageTerm construye un término porcentual (0-100, sobre el remanente).
func PercentageTerm(pct decimal.Decimal) PayoutTerm {
	return PayoutTerm{kind: TermPercentage, value: pct}
}

// FlatRateTerm construye un término de tarifa fija mensual.
func FlatRateTerm(amount decimal.Decimal) PayoutTerm {
	return PayoutTerm{kind: TermFlatRate, value: amount}
}

// Kind devuelve el tipo del término (TermPercentage o TermFlatRate).
func (t PayoutTerm) Kind() string { return t.kind }

// Value devuelve el porcentaje o el monto fijo según el tipo.
func (t PayoutTerm) Value() decimal.Decimal { return t.value }

// IsPercentage informa si el término es porcentual.
func (t PayoutTerm) IsPercentage() bool { return t.kind == TermPercentage }

// IsZero informa si el término no fue construido (agreement sin término es inválido).
func (t PayoutTerm) IsZero() bool { return t.kind == "" }

// RevenueShareAgreement representa la participación de un socio sobre la
// utilidad neta mensual de un cliente.
//
// Priority es el orden de deducción en la cascada: menor = se paga primero.
// Es único por cliente y 0-based; reordenar renumera la lista completa de forma
// densa, pero un delete deja huecos tolerados (el orden de lectura es por valor).
type RevenueShareAgreement struct {
	ID        string
	ClientID  string
	PartnerID string
	Term      PayoutTerm
	Priority  int
	StartDate time.Time
	EndDate   *time.Time // nil = sin fecha de fin
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveInMonth informa si el acuerdo está vigente para el mes [monthStart, monthEnd]:
// StartDate <= fin de mes y (sin EndDate o EndDate >= inicio de mes).
func (a RevenueShareAgreement) ActiveInMonth(monthStart, monthEnd time.Time) bool {
	if a.StartDate.After(monthEnd) {
		return false
	}
	if a.EndDate != nil && a.EndDate.Before(monthStart) {
		return false
	}
	return true
}
