package revshare

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	domrevshare "github.com/tu-usuario/backoffice-api/internal/domain/revshare"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase gestiona los acuerdos de revenue share y expone las vistas derivadas
// de la cascada (tarjeta resumen del cliente, ingreso mensual del socio).
// La matemática vive en internal/domain/revshare; aquí se orquesta persistencia
// y vigencia mensual.
type UseCase struct {
	txRunner      TxRunner
	agreementRepo repository.RevenueShareRepository
	clientRepo    repository.ClientRepository
	partnerRepo   repository.PartnerRepository
	expenseRepo   repository.ExpenseRepository
	opts          domrevshare.Options
}

// NewUseCase construye el caso de uso. opts controla el comportamiento de
// remanente negativo (ver domain/revshare.Options).
func NewUseCase(
	txRunner TxRunner,
	agreementRepo repository.RevenueShareRepository,
	clientRepo repository.ClientRepository,
	partnerRepo repository.PartnerRepository,
	expenseRepo repository.ExpenseRepository,
	opts domrevshare.Options,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		agreementRepo: agreementRepo,
		clientRepo:    clientRepo,
		partnerRepo:   partnerRepo,
		expenseRepo:   expenseRepo,
		opts:          opts,
	}
}

// CreateAgreement ata un socio a un cliente con un término de pago.
// La prioridad del acuerdo nuevo es max(existentes)+1, o 0 si no hay ninguno:
// el nuevo entra al final de la cascada.
func (uc *UseCase) CreateAgreement(clientID string, in dto.CreateAgreementRequest) (*dto.AgreementResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	partner, err := uc.partnerRepo.GetByID(in.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}

	term, err := parseTerm(in.Type, in.Value)
	if err != nil {
		return nil, err
	}
	startDate, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var endDate *time.Time
	if in.EndDate != nil && *in.EndDate != "" {
		ed, err := time.Parse(dateLayout, *in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		endDate = &ed
	}

	existing, err := uc.agreementRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	agreement := &entity.RevenueShareAgreement{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		PartnerID: in.PartnerID,
		Term:      term,
		Priority:  domrevshare.NextPriority(deref(existing)),
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.agreementRepo.Create(agreement); err != nil {
		return nil, err
	}
	return toAgreementResponse(agreement), nil
}

// UpdateAgreement edita término y fechas. No toca Priority: el orden solo
// cambia vía Reorder.
func (uc *UseCase) UpdateAgreement(id string, in dto.UpdateAgreementRequest) (*dto.AgreementResponse, error) {
	agreement, err := uc.agreementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, domain.ErrNotFound
	}

	if in.Type != nil || in.Value != nil {
		kind := agreement.Term.Kind()
		value := agreement.Term.Value()
		if in.Type != nil {
			kind = *in.Type
		}
		if in.Value != nil {
			value = *in.Value
		}
		term, err := parseTerm(kind, value)
		if err != nil {
			return nil, err
		}
		agreement.Term = term
	}
	if in.StartDate != nil {
		sd, err := time.Parse(dateLayout, *in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		agreement.StartDate = sd
	}
	if in.EndDate != nil {
		if *in.EndDate == "" {
			agreement.EndDate = nil
		} else {
			ed, err := time.Parse(dateLayout, *in.EndDate)
			if err != nil {
				return nil, domain.ErrInvalidInput
			}
			agreement.EndDate = &ed
		}
	}
	agreement.UpdatedAt = time.Now()

	if err := uc.agreementRepo.Update(agreement); err != nil {
		return nil, err
	}
	return toAgreementResponse(agreement), nil
}

// DeleteAgreement elimina el acuerdo SIN renumerar a los sobrevivientes: los
// huecos se toleran porque el orden de lectura es por valor de prioridad, y la
// densidad la restaura el siguiente reorder.
func (uc *UseCase) DeleteAgreement(id string) error {
	agreement, err := uc.agreementRepo.GetByID(id)
	if err != nil {
		return err
	}
	if agreement == nil {
		return domain.ErrNotFound
	}
	return uc.agreementRepo.Delete(id)
}

// Reorder mueve un acuerdo a newIndex y renumera la lista completa del cliente
// (permutación densa 0..N-1) dentro de UNA transacción.
func (uc *UseCase) Reorder(ctx context.Context, clientID, agreementID string, newIndex int) ([]dto.AgreementResponse, error) {
	ordered, err := uc.agreementRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	result, err := domrevshare.Reorder(deref(ordered), agreementID, newIndex)
	if err != nil {
		return nil, err
	}

	// Lote atómico: todas las prioridades nuevas o ninguna
	err = uc.txRunner.Run(ctx, func(agreementRepo repository.RevenueShareRepository) error {
		for _, a := range result {
			if err := agreementRepo.UpdatePriority(a.ID, a.Priority); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.AgreementResponse, 0, len(result))
	for i := range result {
		out = append(out, *toAgreementResponse(&result[i]))
	}
	return out, nil
}

// ListByClient devuelve los acuerdos del cliente ordenados por prioridad.
func (uc *UseCase) ListByClient(clientID string) ([]dto.AgreementResponse, error) {
	list, err := uc.agreementRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AgreementResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAgreementResponse(a))
	}
	return out, nil
}

// ClientWaterfall calcula la cascada del mes en curso para la tarjeta resumen:
// utilidad neta, pago por acuerdo vigente, total y remanente. Nada se persiste.
func (uc *UseCase) ClientWaterfall(clientID string) (*dto.WaterfallResponse, error) {
	return uc.clientWaterfallAt(clientID, time.Now())
}

// clientCascade resultado interno de la cascada con precisión completa: los
// pagos solo se redondean al mapear a DTO, nunca antes de agregarse.
type clientCascade struct {
	client    *entity.Client
	active    []entity.RevenueShareAgreement
	payouts   []decimal.Decimal
	netProfit decimal.Decimal
}

func (uc *UseCase) cascadeAt(clientID string, at time.Time) (*clientCascade, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	expenses, err := uc.expenseRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	all, err := uc.agreementRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}

	monthStart, monthEnd := monthWindow(at)
	active := make([]entity.RevenueShareAgreement, 0, len(all))
	for _, a := range all {
		if a.ActiveInMonth(monthStart, monthEnd) {
			active = append(active, *a)
		}
	}

	netProfit := domrevshare.NetMonthlyProfit(client.MRR, deref(expenses))
	return &clientCascade{
		client:    client,
		active:    active,
		payouts:   domrevshare.ComputePayoutsWith(active, netProfit, uc.opts),
		netProfit: netProfit,
	}, nil
}

func (uc *UseCase) clientWaterfallAt(clientID string, at time.Time) (*dto.WaterfallResponse, error) {
	cascade, err := uc.cascadeAt(clientID, at)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.WaterfallLine, 0, len(cascade.active))
	total := decimal.Zero
	for i, a := range cascade.active {
		lines = append(lines, dto.WaterfallLine{
			AgreementID: a.ID,
			PartnerID:   a.PartnerID,
			Type:        a.Term.Kind(),
			Value:       a.Term.Value(),
			Priority:    a.Priority,
			Payout:      cascade.payouts[i].Round(2), // redondeo solo al presentar
		})
		total = total.Add(cascade.payouts[i])
	}

	return &dto.WaterfallResponse{
		ClientID:    clientID,
		MRR:         cascade.client.MRR,
		NetProfit:   cascade.netProfit.Round(2),
		Lines:       lines,
		TotalPayout: total.Round(2),
		Remainder:   cascade.netProfit.Sub(total).Round(2),
	}, nil
}

// PartnerSummary calcula el ingreso mensual total de un socio. El pago del
// socio en cada cliente depende de la cascada COMPLETA de ese cliente (lista
// de acuerdos y orden de prioridad), no de su acuerdo aislado: se recalcula la
// cascada entera por cliente y se extraen las líneas del socio.
func (uc *UseCase) PartnerSummary(partnerID string) (*dto.PartnerSummaryResponse, error) {
	partner, err := uc.partnerRepo.GetByID(partnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}

	agreements, err := uc.agreementRepo.ListByPartner(partnerID)
	if err != nil {
		return nil, err
	}

	// Clientes únicos preservando el orden de aparición
	clientIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, a := range agreements {
		if !seen[a.ClientID] {
			seen[a.ClientID] = true
			clientIDs = append(clientIDs, a.ClientID)
		}
	}

	// Se agrega sobre los pagos sin redondear; el redondeo a centavos ocurre
	// una sola vez por línea presentada y una vez sobre el total. Sumar líneas
	// ya redondeadas acumula el sesgo de cada redondeo en el total.
	now := time.Now()
	total := decimal.Zero
	lines := make([]dto.PartnerPayoutLine, 0, len(agreements))
	for _, clientID := range clientIDs {
		cascade, err := uc.cascadeAt(clientID, now)
		if err != nil {
			return nil, err
		}
		for i, a := range cascade.active {
			if a.PartnerID != partnerID {
				continue
			}
			lines = append(lines, dto.PartnerPayoutLine{
				ClientID:    clientID,
				AgreementID: a.ID,
				Payout:      cascade.payouts[i].Round(2),
			})
			total = total.Add(cascade.payouts[i])
		}
	}

	return &dto.PartnerSummaryResponse{
		PartnerID:    partnerID,
		TotalMonthly: total.Round(2),
		Lines:        lines,
	}, nil
}

// monthWindow devuelve [primer instante, último instante] del mes de at.
func monthWindow(at time.Time) (time.Time, time.Time) {
	start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// parseTerm valida y construye el término de pago: porcentaje en [0,100],
// tarifa fija no negativa.
func parseTerm(kind string, value decimal.Decimal) (entity.PayoutTerm, error) {
	switch kind {
	case entity.TermPercentage:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
			return entity.PayoutTerm{}, domain.ErrInvalidInput
		}
		return entity.PercentageTerm(value), nil
	case entity.TermFlatRate:
		if value.IsNegative() {
			return entity.PayoutTerm{}, domain.ErrInvalidInput
		}
		return entity.FlatRateTerm(value), nil
	default:
		return entity.PayoutTerm{}, domain.ErrInvalidInput
	}
}

func toAgreementResponse(a *entity.RevenueShareAgreement) *dto.AgreementResponse {
	return &dto.AgreementResponse{
		ID:        a.ID,
		ClientID:  a.ClientID,
		PartnerID: a.PartnerID,
		Type:      a.Term.Kind(),
		Value:     a.Term.Value(),
		Priority:  a.Priority,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
	}
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, p := range in {
		out = append(out, *p)
	}
	return out
}
