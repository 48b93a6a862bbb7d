package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ClientUseCase casos de uso CRUD para clientes y sus gastos recurrentes.
// La utilidad neta y la cascada viven en el caso de uso de revenue share.
type ClientUseCase struct {
	repo        repository.ClientRepository
	expenseRepo repository.ExpenseRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, expenseRepo repository.ExpenseRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, expenseRepo: expenseRepo}
}

// Create crea un nuevo cliente. MRR no puede ser negativo.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.MRR.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:           uuid.New().String(),
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		MRR:          in.MRR,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// Update actualiza un cliente.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.ContactEmail != nil {
		client.ContactEmail = *in.ContactEmail
	}
	if in.MRR != nil {
		if in.MRR.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		client.MRR = *in.MRR
	}
	if in.Active != nil {
		client.Active = *in.Active
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un cliente por ID.
func (uc *ClientUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// AddExpense registra un gasto recurrente del cliente.
// Para periodicidad percent, Amount es un porcentaje en [0,100].
func (uc *ClientUseCase) AddExpense(clientID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	client, err := uc.repo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	switch in.Periodicity {
	case entity.PeriodicityMonthly, entity.PeriodicityQuarterly, entity.PeriodicityYearly:
		if in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	case entity.PeriodicityPercent:
		if in.Amount.IsNegative() || in.Amount.GreaterThan(hundred) {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.Concept == "" {
		return nil, domain.ErrInvalidInput
	}
	expense := &entity.ClientExpense{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Concept:     in.Concept,
		Periodicity: in.Periodicity,
		Amount:      in.Amount,
		CreatedAt:   time.Now(),
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense, client), nil
}

// ListExpenses lista los gastos recurrentes del cliente con su equivalente mensual.
func (uc *ClientUseCase) ListExpenses(clientID string) ([]dto.ExpenseResponse, error) {
	client, err := uc.repo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.expenseRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e, client))
	}
	return out, nil
}

// DeleteExpense elimina un gasto recurrente por ID.
func (uc *ClientUseCase) DeleteExpense(id string) error {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.expenseRepo.Delete(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		ContactEmail: c.ContactEmail,
		MRR:          c.MRR,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toExpenseResponse(e *entity.ClientExpense, c *entity.Client) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:                e.ID,
		ClientID:          e.ClientID,
		Concept:           e.Concept,
		Periodicity:       e.Periodicity,
		Amount:            e.Amount,
		MonthlyEquivalent: e.MonthlyEquivalent(c.MRR).Round(2),
		CreatedAt:         e.CreatedAt,
	}
}
