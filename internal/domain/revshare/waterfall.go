// Package revshare implementa la cascada de revenue share (servicio de dominio puro).
//
// La cascada deduce pagos de una base de utilidad que se va reduciendo, en el
// orden de prioridad definido por el usuario: los acuerdos porcentuales se
// calculan sobre el REMANENTE disponible en su posición, los de tarifa fija se
// pagan completos, y ambos reducen la base de los acuerdos siguientes.
package revshare

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Options configura el motor de cascada.
//
// ClampNegative: si está activo, un acuerdo porcentual evaluado contra un
// remanente negativo paga 0 en lugar de un monto negativo. Por defecto está
// desactivado: el comportamiento histórico es que el socio absorbe pérdidas
// (pago negativo) cuando el remanente ya quedó en rojo.
type Options struct {
	ClampNegative bool
}

// ComputePayouts calcula el pago de cada acuerdo contra la utilidad neta mensual.
//
// Precondición: agreements ya viene ordenado ascendente por Priority.
// netProfit puede ser negativo; esta función no impone piso.
//
// Algoritmo: remaining := netProfit; para cada acuerdo en orden, tarifa fija
// paga su monto tal cual y porcentaje paga remaining*pct/100; en ambos casos
// remaining -= pago antes de pasar al siguiente. Devuelve un pago por acuerdo
// en el mismo orden de entrada; lista vacía => resultado vacío y el remanente
// queda en netProfit completo.
func ComputePayouts(agreements []entity.RevenueShareAgreement, netProfit decimal.Decimal) []decimal.Decimal {
	return ComputePayoutsWith(agreements, netProfit, Options{})
}

// ComputePayoutsWith es ComputePayouts con opciones explícitas.
func ComputePayoutsWith(agreements []entity.RevenueShareAgreement, netProfit decimal.Decimal, opts Options) []decimal.Decimal {
	payouts := make([]decimal.Decimal, 0, len(agreements))
	remaining := netProfit
	for _, a := range agreements {
		var payout decimal.Decimal
		if a.Term.IsPercentage() {
			payout = remaining.Mul(a.Term.Value()).Div(hundred)
			if opts.ClampNegative && payout.IsNegative() {
				payout = decimal.Zero
			}
		} else {
			// Tarifa fija: nunca se escala por el remanente, es un pase directo.
			payout = a.Term.Value()
		}
		payouts = append(payouts, payout)
		remaining = remaining.Sub(payout)
	}
	return payouts
}

// TotalPayout suma los pagos de la cascada (tarjeta resumen del cliente).
// Nunca se persiste: siempre se recalcula desde los acuerdos vigentes.
func TotalPayout(agreements []entity.RevenueShareAgreement, netProfit decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range ComputePayouts(agreements, netProfit) {
		total = total.Add(p)
	}
	return total
}

// Remainder devuelve la utilidad que queda después de toda la cascada.
func Remainder(agreements []entity.RevenueShareAgreement, netProfit decimal.Decimal) decimal.Decimal {
	return netProfit.Sub(TotalPayout(agreements, netProfit))
}

// Reorder mueve el acuerdo movedID a newIndex y renumera Priority = índice
// para TODA la secuencia resultante (0-based, densa). Es la única operación que
// renumera acuerdos distintos al movido: un swap de un solo campo dejaría
// huecos o colisiones.
//
// Precondición: ordered ya viene ordenado por Priority. newIndex se recorta a
// [0, len-1]. Devuelve ErrAgreementNotFound si movedID no está en la lista.
// La persistencia debe aplicar el resultado como un único lote transaccional.
func Reorder(ordered []entity.RevenueShareAgreement, movedID string, newIndex int) ([]entity.RevenueShareAgreement, error) {
	idx := -1
	for i, a := range ordered {
		if a.ID == movedID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrAgreementNotFound
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(ordered)-1 {
		newIndex = len(ordered) - 1
	}

	result := make([]entity.RevenueShareAgreement, 0, len(ordered))
	result = append(result, ordered[:idx]...)
	result = append(result, ordered[idx+1:]...)

	// Reinserta en la nueva posición
	result = append(result, entity.RevenueShareAgreement{})
	copy(result[newIndex+1:], result[newIndex:])
	result[newIndex] = ordered[idx]

	for i := range result {
		result[i].Priority = i
	}
	return result, nil
}

// NextPriority devuelve la prioridad a asignar a un acuerdo nuevo:
// max(existentes)+1, o 0 si el cliente no tiene acuerdos.
func NextPriority(existing []entity.RevenueShareAgreement) int {
	next := 0
	for _, a := range existing {
		if a.Priority >= next {
			next = a.Priority + 1
		}
	}
	return next
}

// NetMonthlyProfit calcula la utilidad neta mensual de un cliente:
// MRR menos la suma de los equivalentes mensuales de sus gastos recurrentes.
func NetMonthlyProfit(mrr decimal.Decimal, expenses []entity.ClientExpense) decimal.Decimal {
	net := mrr
	for _, e := range expenses {
		net = net.Sub(e.MonthlyEquivalent(mrr))
	}
	return net
}
