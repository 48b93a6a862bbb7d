package revshare_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	apprevshare "github.com/tu-usuario/backoffice-api/internal/application/revshare"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	domrevshare "github.com/tu-usuario/backoffice-api/internal/domain/revshare"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fake de TxRunner toma un snapshot antes del callback y
// lo restaura si falla: imita el rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeAgreementRepo struct {
	agreements map[string]*entity.RevenueShareAgreement
	failAfter  int // si > 0, UpdatePriority falla después de N llamadas exitosas
	updates    int
}

func newFakeAgreementRepo() *fakeAgreementRepo {
	return &fakeAgreementRepo{agreements: make(map[string]*entity.RevenueShareAgreement)}
}

func (f *fakeAgreementRepo) Create(a *entity.RevenueShareAgreement) error {
	cp := *a
	f.agreements[a.ID] = &cp
	return nil
}

func (f *fakeAgreementRepo) GetByID(id string) (*entity.RevenueShareAgreement, error) {
	if a, ok := f.agreements[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAgreementRepo) Update(a *entity.RevenueShareAgreement) error {
	cp := *a
	f.agreements[a.ID] = &cp
	return nil
}

func (f *fakeAgreementRepo) Delete(id string) error {
	delete(f.agreements, id)
	return nil
}

func (f *fakeAgreementRepo) ListByClient(clientID string) ([]*entity.RevenueShareAgreement, error) {
	var out []*entity.RevenueShareAgreement
	for _, a := range f.agreements {
		if a.ClientID == clientID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

func (f *fakeAgreementRepo) ListByPartner(partnerID string) ([]*entity.RevenueShareAgreement, error) {
	var out []*entity.RevenueShareAgreement
	for _, a := range f.agreements {
		if a.PartnerID == partnerID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAgreementRepo) UpdatePriority(id string, priority int) error {
	if f.failAfter > 0 && f.updates >= f.failAfter {
		return errors.New("fallo transitorio de escritura")
	}
	f.updates++
	a, ok := f.agreements[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Priority = priority
	return nil
}

func (f *fakeAgreementRepo) snapshot() map[string]*entity.RevenueShareAgreement {
	snap := make(map[string]*entity.RevenueShareAgreement, len(f.agreements))
	for k, v := range f.agreements {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

type fakeRevshareTxRunner struct {
	repo *fakeAgreementRepo
}

func (f *fakeRevshareTxRunner) Run(ctx context.Context, fn func(repository.RevenueShareRepository) error) error {
	snap := f.repo.snapshot()
	if err := fn(f.repo); err != nil {
		f.repo.agreements = snap // rollback
		return err
	}
	return nil
}

type fakeClientRepo struct{ clients map[string]*entity.Client }

func (f *fakeClientRepo) Create(c *entity.Client) error                   { f.clients[c.ID] = c; return nil }
func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error)       { return f.clients[id], nil }
func (f *fakeClientRepo) Update(c *entity.Client) error                   { return nil }
func (f *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }
func (f *fakeClientRepo) Delete(id string) error                          { return nil }

type fakePartnerRepo struct{ partners map[string]*entity.Partner }

func (f *fakePartnerRepo) Create(p *entity.Partner) error                    { f.partners[p.ID] = p; return nil }
func (f *fakePartnerRepo) GetByID(id string) (*entity.Partner, error)        { return f.partners[id], nil }
func (f *fakePartnerRepo) Update(p *entity.Partner) error                    { return nil }
func (f *fakePartnerRepo) List(limit, offset int) ([]*entity.Partner, error) { return nil, nil }
func (f *fakePartnerRepo) Delete(id string) error                            { return nil }

type fakeExpenseRepo struct{ expenses []*entity.ClientExpense }

func (f *fakeExpenseRepo) Create(e *entity.ClientExpense) error              { f.expenses = append(f.expenses, e); return nil }
func (f *fakeExpenseRepo) GetByID(id string) (*entity.ClientExpense, error)  { return nil, nil }
func (f *fakeExpenseRepo) Delete(id string) error                            { return nil }
func (f *fakeExpenseRepo) ListByClient(clientID string) ([]*entity.ClientExpense, error) {
	var out []*entity.ClientExpense
	for _, e := range f.expenses {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type revshareFixture struct {
	uc   *apprevshare.UseCase
	repo *fakeAgreementRepo
}

func newRevshareFixture(t *testing.T) *revshareFixture {
	t.Helper()
	repo := newFakeAgreementRepo()
	clients := &fakeClientRepo{clients: map[string]*entity.Client{
		"client-1": {ID: "client-1", Name: "Acme", MRR: decimal.NewFromInt(2000), Active: true},
		"client-2": {ID: "client-2", Name: "Globex", MRR: decimal.NewFromInt(1000), Active: true},
	}}
	partners := &fakePartnerRepo{partners: map[string]*entity.Partner{
		"partner-1": {ID: "partner-1", Name: "Socio Uno"},
		"partner-2": {ID: "partner-2", Name: "Socio Dos"},
	}}
	expenses := &fakeExpenseRepo{}
	runner := &fakeRevshareTxRunner{repo: repo}
	return &revshareFixture{
		uc:   apprevshare.NewUseCase(runner, repo, clients, partners, expenses, domrevshare.Options{}),
		repo: repo,
	}
}

func (fx *revshareFixture) seedAgreement(t *testing.T, id, clientID, partnerID string, term entity.PayoutTerm, priority int) {
	t.Helper()
	require.NoError(t, fx.repo.Create(&entity.RevenueShareAgreement{
		ID:        id,
		ClientID:  clientID,
		PartnerID: partnerID,
		Term:      term,
		Priority:  priority,
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
}

func createReq(partnerID, kind string, value int64) dto.CreateAgreementRequest {
	return dto.CreateAgreementRequest{
		PartnerID: partnerID,
		Type:      kind,
		Value:     decimal.NewFromInt(value),
		StartDate: "2020-01-01",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateAgreement / DeleteAgreement
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAgreement_AsignaPrioridadAlFinal(t *testing.T) {
	fx := newRevshareFixture(t)

	first, err := fx.uc.CreateAgreement("client-1", createReq("partner-1", entity.TermPercentage, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, first.Priority, "el primer acuerdo entra con prioridad 0")

	second, err := fx.uc.CreateAgreement("client-1", createReq("partner-2", entity.TermFlatRate, 300))
	require.NoError(t, err)
	assert.Equal(t, 1, second.Priority)
}

// Tras un delete los huecos se toleran: el siguiente acuerdo entra con max+1.
func TestCreateAgreement_HuecoTrasDelete(t *testing.T) {
	fx := newRevshareFixture(t)
	fx.seedAgreement(t, "a", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(10)), 0)
	fx.seedAgreement(t, "b", "client-1", "partner-2", entity.PercentageTerm(decimal.NewFromInt(20)), 1)
	fx.seedAgreement(t, "c", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(5)), 2)

	require.NoError(t, fx.uc.DeleteAgreement("b"))

	// Los sobrevivientes conservan sus valores (0 y 2): sin renumeración
	list, err := fx.uc.ListByClient("client-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].Priority)
	assert.Equal(t, 2, list[1].Priority)

	created, err := fx.uc.CreateAgreement("client-1", createReq("partner-2", entity.TermFlatRate, 100))
	require.NoError(t, err)
	assert.Equal(t, 3, created.Priority, "max(0,2)+1 = 3 aunque haya hueco")
}

func TestCreateAgreement_ValidaTermino(t *testing.T) {
	fx := newRevshareFixture(t)

	cases := []dto.CreateAgreementRequest{
		createReq("partner-1", "otro-tipo", 10),
		createReq("partner-1", entity.TermPercentage, 150), // > 100
		createReq("partner-1", entity.TermPercentage, -5),
		createReq("partner-1", entity.TermFlatRate, -100),
	}
	for _, in := range cases {
		_, err := fx.uc.CreateAgreement("client-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reorder
// ──────────────────────────────────────────────────────────────────────────────

func TestReorder_PersisteLaPermutacionDensa(t *testing.T) {
	fx := newRevshareFixture(t)
	fx.seedAgreement(t, "a", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(10)), 0)
	fx.seedAgreement(t, "b", "client-1", "partner-2", entity.FlatRateTerm(decimal.NewFromInt(300)), 1)
	fx.seedAgreement(t, "c", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(20)), 2)

	result, err := fx.uc.Reorder(context.Background(), "client-1", "c", 0)
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "c", result[0].ID)

	// La persistencia refleja la permutación 0..N-1 en el nuevo orden
	list, err := fx.uc.ListByClient("client-1")
	require.NoError(t, err)
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
	for i, a := range list {
		assert.Equal(t, i, a.Priority)
	}
}

// Si una escritura del lote falla, ninguna prioridad cambia (rollback).
func TestReorder_FalloParcialHaceRollback(t *testing.T) {
	fx := newRevshareFixture(t)
	fx.seedAgreement(t, "a", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(10)), 0)
	fx.seedAgreement(t, "b", "client-1", "partner-2", entity.FlatRateTerm(decimal.NewFromInt(300)), 1)
	fx.seedAgreement(t, "c", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(20)), 2)

	fx.repo.failAfter = 2 // la tercera escritura del lote falla

	_, err := fx.uc.Reorder(context.Background(), "client-1", "c", 0)
	require.Error(t, err)

	list, err := fx.uc.ListByClient("client-1")
	require.NoError(t, err)
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	assert.Equal(t, []string{"a", "b", "c"}, ids, "el orden original sobrevive al fallo")
	for i, a := range list {
		assert.Equal(t, i, a.Priority)
	}
}

func TestReorder_AcuerdoInexistente(t *testing.T) {
	fx := newRevshareFixture(t)
	fx.seedAgreement(t, "a", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(10)), 0)

	_, err := fx.uc.Reorder(context.Background(), "client-1", "no-existe", 0)
	assert.ErrorIs(t, err, domain.ErrAgreementNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ClientWaterfall / PartnerSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestClientWaterfall_EscenarioReferencia(t *testing.T) {
	fx := newRevshareFixture(t)
	fx.seedAgreement(t, "p1", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(10)), 0)
	fx.seedAgreement(t, "p2", "client-1", "partner-2", entity.FlatRateTerm(decimal.NewFromInt(300)), 1)
	fx.seedAgreement(t, "p3", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(20)), 2)

	wf, err := fx.uc.ClientWaterfall("client-1")
	require.NoError(t, err)

	assert.True(t, wf.NetProfit.Equal(decimal.NewFromInt(2000)), "sin gastos la utilidad neta es el MRR")
	require.Len(t, wf.Lines, 3)
	assert.True(t, wf.Lines[0].Payout.Equal(decimal.NewFromInt(200)))
	assert.True(t, wf.Lines[1].Payout.Equal(decimal.NewFromInt(300)))
	assert.True(t, wf.Lines[2].Payout.Equal(decimal.NewFromInt(300)))
	assert.True(t, wf.TotalPayout.Equal(decimal.NewFromInt(800)))
	assert.True(t, wf.Remainder.Equal(decimal.NewFromInt(1200)))
}

// Un acuerdo vencido no participa en la cascada del mes en curso.
func TestClientWaterfall_ExcluyeVencidos(t *testing.T) {
	fx := newRevshareFixture(t)
	ended := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fx.repo.Create(&entity.RevenueShareAgreement{
		ID: "viejo", ClientID: "client-1", PartnerID: "partner-1",
		Term:     entity.PercentageTerm(decimal.NewFromInt(50)),
		Priority: 0,
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &ended,
	}))
	fx.seedAgreement(t, "vigente", "client-1", "partner-2", entity.PercentageTerm(decimal.NewFromInt(10)), 1)

	wf, err := fx.uc.ClientWaterfall("client-1")
	require.NoError(t, err)
	require.Len(t, wf.Lines, 1)
	assert.Equal(t, "vigente", wf.Lines[0].AgreementID)
	assert.True(t, wf.Lines[0].Payout.Equal(decimal.NewFromInt(200)), "10 por ciento de 2000 completo: el vencido no dedujo nada")
}

// El ingreso del socio por cliente depende de la cascada completa del cliente:
// en client-1 su 20% se calcula después de otros acuerdos; en client-2 va primero.
func TestPartnerSummary_SumaSobreCascadasCompletas(t *testing.T) {
	fx := newRevshareFixture(t)
	// client-1 (MRR 2000): [partner-2: 50%, partner-1: 20%] → partner-1 = 20% de 1000 = 200
	fx.seedAgreement(t, "c1-otro", "client-1", "partner-2", entity.PercentageTerm(decimal.NewFromInt(50)), 0)
	fx.seedAgreement(t, "c1-mio", "client-1", "partner-1", entity.PercentageTerm(decimal.NewFromInt(20)), 1)
	// client-2 (MRR 1000): [partner-1: 20%] → partner-1 = 200
	fx.seedAgreement(t, "c2-mio", "client-2", "partner-1", entity.PercentageTerm(decimal.NewFromInt(20)), 0)

	summary, err := fx.uc.PartnerSummary("partner-1")
	require.NoError(t, err)

	require.Len(t, summary.Lines, 2)
	assert.True(t, summary.TotalMonthly.Equal(decimal.NewFromInt(400)),
		"200 (tras el 50%% de partner-2 en client-1) + 200 (client-2), obtuvo %s", summary.TotalMonthly)

	byClient := map[string]decimal.Decimal{}
	for _, l := range summary.Lines {
		byClient[l.ClientID] = l.Payout
	}
	assert.True(t, byClient["client-1"].Equal(decimal.NewFromInt(200)))
	assert.True(t, byClient["client-2"].Equal(decimal.NewFromInt(200)))
}

// Cada línea se presenta redondeada a centavos, pero el total agrega los pagos
// crudos y redondea una sola vez: dos medios centavos suman un cuarto, no dos
// centavos.
func TestClientWaterfall_TotalAgregaPagosSinRedondear(t *testing.T) {
	fx := newRevshareFixture(t)
	fx.seedAgreement(t, "f1", "client-1", "partner-1", entity.FlatRateTerm(decimal.RequireFromString("0.125")), 0)
	fx.seedAgreement(t, "f2", "client-1", "partner-2", entity.FlatRateTerm(decimal.RequireFromString("0.125")), 1)

	wf, err := fx.uc.ClientWaterfall("client-1")
	require.NoError(t, err)

	require.Len(t, wf.Lines, 2)
	for _, l := range wf.Lines {
		assert.True(t, l.Payout.Equal(decimal.RequireFromString("0.13")),
			"la línea se muestra redondeada, obtuvo %s", l.Payout)
	}
	assert.True(t, wf.TotalPayout.Equal(decimal.RequireFromString("0.25")),
		"el total es round(0.125+0.125), no 0.13+0.13, obtuvo %s", wf.TotalPayout)
	assert.True(t, wf.Remainder.Equal(decimal.RequireFromString("1999.75")))
}

func TestPartnerSummary_TotalAgregaPagosSinRedondear(t *testing.T) {
	fx := newRevshareFixture(t)
	// client-1 (MRR 2000): 0.00625% → pago crudo 0.125
	fx.seedAgreement(t, "c1-frac", "client-1", "partner-1", entity.PercentageTerm(decimal.RequireFromString("0.00625")), 0)
	// client-2 (MRR 1000): 0.0125% → pago crudo 0.125
	fx.seedAgreement(t, "c2-frac", "client-2", "partner-1", entity.PercentageTerm(decimal.RequireFromString("0.0125")), 0)

	summary, err := fx.uc.PartnerSummary("partner-1")
	require.NoError(t, err)

	require.Len(t, summary.Lines, 2)
	for _, l := range summary.Lines {
		assert.True(t, l.Payout.Equal(decimal.RequireFromString("0.13")),
			"la línea se muestra redondeada, obtuvo %s", l.Payout)
	}
	assert.True(t, summary.TotalMonthly.Equal(decimal.RequireFromString("0.25")),
		"el total mensual es round(0.125+0.125), no 0.13+0.13, obtuvo %s", summary.TotalMonthly)
}

func TestPartnerSummary_SocioInexistente(t *testing.T) {
	fx := newRevshareFixture(t)
	_, err := fx.uc.PartnerSummary("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
