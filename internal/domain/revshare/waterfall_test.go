package revshare_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/revshare"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func pctAgreement(id string, pct int64, priority int) entity.RevenueShareAgreement {
	return entity.RevenueShareAgreement{
		ID:       id,
		ClientID: "client-1",
		Term:     entity.PercentageTerm(decimal.NewFromInt(pct)),
		Priority: priority,
	}
}

func flatAgreement(id string, amount int64, priority int) entity.RevenueShareAgreement {
	return entity.RevenueShareAgreement{
		ID:       id,
		ClientID: "client-1",
		Term:     entity.FlatRateTerm(decimal.NewFromInt(amount)),
		Priority: priority,
	}
}

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// ComputePayouts
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: utilidad neta $2000, acuerdos [10%, fijo $300, 20%].
// Pagos esperados: 200, 300, 300; remanente final 1200; total 800.
func TestComputePayouts_EscenarioReferencia(t *testing.T) {
	agreements := []entity.RevenueShareAgreement{
		pctAgreement("p1", 10, 0),
		flatAgreement("p2", 300, 1),
		pctAgreement("p3", 20, 2),
	}

	payouts := revshare.ComputePayouts(agreements, d(2000))
	require.Len(t, payouts, 3)

	assert.True(t, payouts[0].Equal(d(200)), "P1 = 10%% de 2000, obtuvo %s", payouts[0])
	assert.True(t, payouts[1].Equal(d(300)), "P2 = tarifa fija 300, obtuvo %s", payouts[1])
	assert.True(t, payouts[2].Equal(d(300)), "P3 = 20%% de 1500, obtuvo %s", payouts[2])

	assert.True(t, revshare.TotalPayout(agreements, d(2000)).Equal(d(800)))
	assert.True(t, revshare.Remainder(agreements, d(2000)).Equal(d(1200)))
}

// Lista vacía: sin pagos y el remanente es la utilidad completa.
func TestComputePayouts_SinAcuerdos(t *testing.T) {
	payouts := revshare.ComputePayouts(nil, d(5000))
	assert.Empty(t, payouts)
	assert.True(t, revshare.Remainder(nil, d(5000)).Equal(d(5000)))
}

// Propiedad de suma: sum(pagos) == utilidad - remanente, para cualquier mezcla.
func TestComputePayouts_PropiedadSuma(t *testing.T) {
	cases := []struct {
		name       string
		agreements []entity.RevenueShareAgreement
		netProfit  decimal.Decimal
	}{
		{"solo porcentajes", []entity.RevenueShareAgreement{pctAgreement("a", 30, 0), pctAgreement("b", 50, 1)}, d(1000)},
		{"mixto", []entity.RevenueShareAgreement{flatAgreement("a", 700, 0), pctAgreement("b", 25, 1), flatAgreement("c", 100, 2)}, d(950)},
		{"utilidad negativa", []entity.RevenueShareAgreement{pctAgreement("a", 40, 0), flatAgreement("b", 200, 1)}, d(-500)},
		{"utilidad cero", []entity.RevenueShareAgreement{pctAgreement("a", 100, 0)}, d(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payouts := revshare.ComputePayouts(tc.agreements, tc.netProfit)
			sum := decimal.Zero
			for _, p := range payouts {
				sum = sum.Add(p)
			}
			remainder := revshare.Remainder(tc.agreements, tc.netProfit)
			assert.True(t, sum.Equal(tc.netProfit.Sub(remainder)),
				"sum(pagos)=%s debe igualar utilidad-remanente=%s", sum, tc.netProfit.Sub(remainder))
		})
	}
}

// Con porcentajes que suman <= 100%% y utilidad >= 0, el remanente nunca es negativo.
func TestComputePayouts_PorcentajesHasta100_RemanenteNoNegativo(t *testing.T) {
	agreements := []entity.RevenueShareAgreement{
		pctAgreement("a", 60, 0),
		pctAgreement("b", 40, 1), // 40% del remanente, no del total
	}
	remainder := revshare.Remainder(agreements, d(1000))
	assert.False(t, remainder.IsNegative(), "remanente %s no debe ser negativo", remainder)
}

// Independencia de tarifa fija: el pago fijo no cambia al variar la utilidad;
// el porcentual sí sigue al remanente disponible en su posición.
func TestComputePayouts_TarifaFijaIndependiente(t *testing.T) {
	agreements := []entity.RevenueShareAgreement{
		pctAgreement("pct", 10, 0),
		flatAgreement("flat", 500, 1),
	}

	low := revshare.ComputePayouts(agreements, d(1000))
	high := revshare.ComputePayouts(agreements, d(9000))

	assert.True(t, low[1].Equal(d(500)))
	assert.True(t, high[1].Equal(d(500)), "la tarifa fija no se escala por la utilidad")
	assert.True(t, low[0].Equal(d(100)))
	assert.True(t, high[0].Equal(d(900)), "el porcentual sí sigue a la utilidad")
}

// Sensibilidad al orden: A (60%) y B (fijo $500) contra $1000.
// [A,B]: A=600, remanente 400, B=500 (remanente -100, caso esperado).
// [B,A]: B=500, remanente 500, A=300.
func TestComputePayouts_OrdenCambiaLosPagos(t *testing.T) {
	a := pctAgreement("A", 60, 0)
	b := flatAgreement("B", 500, 1)

	ab := revshare.ComputePayouts([]entity.RevenueShareAgreement{a, b}, d(1000))
	assert.True(t, ab[0].Equal(d(600)))
	assert.True(t, ab[1].Equal(d(500)))
	assert.True(t, revshare.Remainder([]entity.RevenueShareAgreement{a, b}, d(1000)).Equal(d(-100)))

	b.Priority, a.Priority = 0, 1
	ba := revshare.ComputePayouts([]entity.RevenueShareAgreement{b, a}, d(1000))
	assert.True(t, ba[0].Equal(d(500)))
	assert.True(t, ba[1].Equal(d(300)), "A = 60 por ciento del remanente 500")
}

// Porcentaje contra remanente negativo produce pago negativo (sin clamp):
// el socio absorbe pérdida. Con ClampNegative el pago queda en 0.
func TestComputePayouts_RemanenteNegativo(t *testing.T) {
	agreements := []entity.RevenueShareAgreement{
		flatAgreement("fijo", 1500, 0), // deja el remanente en -500
		pctAgreement("pct", 20, 1),
	}

	sinClamp := revshare.ComputePayouts(agreements, d(1000))
	assert.True(t, sinClamp[1].Equal(d(-100)), "20%% de -500 = -100 sin clamp, obtuvo %s", sinClamp[1])

	conClamp := revshare.ComputePayoutsWith(agreements, d(1000), revshare.Options{ClampNegative: true})
	assert.True(t, conClamp[1].IsZero(), "con clamp el pago porcentual negativo queda en 0")
	// La tarifa fija no se clampea: es un monto pactado, no un porcentaje
	assert.True(t, conClamp[0].Equal(d(1500)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reorder
// ──────────────────────────────────────────────────────────────────────────────

// Tras reordenar, las prioridades son una permutación densa 0..N-1 que sigue
// el nuevo orden de la secuencia.
func TestReorder_RenumeraDenso(t *testing.T) {
	ordered := []entity.RevenueShareAgreement{
		pctAgreement("a", 10, 0),
		flatAgreement("b", 100, 1),
		pctAgreement("c", 20, 2),
		flatAgreement("d", 50, 3),
	}

	result, err := revshare.Reorder(ordered, "d", 1)
	require.NoError(t, err)
	require.Len(t, result, 4)

	ids := []string{result[0].ID, result[1].ID, result[2].ID, result[3].ID}
	assert.Equal(t, []string{"a", "d", "b", "c"}, ids)
	for i, a := range result {
		assert.Equal(t, i, a.Priority, "la prioridad debe ser el índice del arreglo")
	}
}

// newIndex fuera de rango se recorta a [0, len-1].
func TestReorder_RecortaIndice(t *testing.T) {
	ordered := []entity.RevenueShareAgreement{
		pctAgreement("a", 10, 0),
		pctAgreement("b", 20, 1),
		pctAgreement("c", 30, 2),
	}

	alFinal, err := revshare.Reorder(ordered, "a", 99)
	require.NoError(t, err)
	assert.Equal(t, "a", alFinal[2].ID)

	alInicio, err := revshare.Reorder(ordered, "c", -5)
	require.NoError(t, err)
	assert.Equal(t, "c", alInicio[0].ID)
}

// movedID inexistente devuelve ErrAgreementNotFound sin tocar nada.
func TestReorder_AcuerdoInexistente(t *testing.T) {
	ordered := []entity.RevenueShareAgreement{pctAgreement("a", 10, 0)}
	_, err := revshare.Reorder(ordered, "no-existe", 0)
	assert.ErrorIs(t, err, domain.ErrAgreementNotFound)
}

// Reordenar no modifica el slice de entrada (función pura).
func TestReorder_NoMutaEntrada(t *testing.T) {
	ordered := []entity.RevenueShareAgreement{
		pctAgreement("a", 10, 0),
		pctAgreement("b", 20, 1),
	}
	_, err := revshare.Reorder(ordered, "b", 0)
	require.NoError(t, err)
	assert.Equal(t, "a", ordered[0].ID)
	assert.Equal(t, 0, ordered[0].Priority)
}

// ──────────────────────────────────────────────────────────────────────────────
// NextPriority / vigencia / utilidad neta
// ──────────────────────────────────────────────────────────────────────────────

func TestNextPriority(t *testing.T) {
	assert.Equal(t, 0, revshare.NextPriority(nil), "sin acuerdos la primera prioridad es 0")

	existing := []entity.RevenueShareAgreement{
		pctAgreement("a", 10, 0),
		pctAgreement("b", 20, 4), // hueco dejado por un delete: se tolera
	}
	assert.Equal(t, 5, revshare.NextPriority(existing), "max(existentes)+1 aunque haya huecos")
}

func TestActiveInMonth(t *testing.T) {
	monthStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	mayEnd := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	julyStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		start  time.Time
		end    *time.Time
		active bool
	}{
		{"sin fecha fin, iniciado antes", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil, true},
		{"inicia después del mes", julyStart, nil, false},
		{"terminó antes del mes", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), &mayEnd, false},
		{"termina dentro del mes", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), &monthStart, true},
		{"inicia el último día del mes", monthEnd, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := entity.RevenueShareAgreement{StartDate: tc.start, EndDate: tc.end}
			assert.Equal(t, tc.active, a.ActiveInMonth(monthStart, monthEnd))
		})
	}
}

// Utilidad neta = MRR - equivalentes mensuales: mensual tal cual, trimestral/3,
// anual/12, porcentaje*MRR/100.
func TestNetMonthlyProfit_Normalizacion(t *testing.T) {
	mrr := d(6000)
	expenses := []entity.ClientExpense{
		{Periodicity: entity.PeriodicityMonthly, Amount: d(500)},
		{Periodicity: entity.PeriodicityQuarterly, Amount: d(900)},  // 300/mes
		{Periodicity: entity.PeriodicityYearly, Amount: d(1200)},    // 100/mes
		{Periodicity: entity.PeriodicityPercent, Amount: d(10)},     // 600/mes
	}

	net := revshare.NetMonthlyProfit(mrr, expenses)
	assert.True(t, net.Equal(d(4500)), "6000-500-300-100-600=4500, obtuvo %s", net)
}

func TestNetMonthlyProfit_SinGastos(t *testing.T) {
	assert.True(t, revshare.NetMonthlyProfit(d(3000), nil).Equal(d(3000)))
}
