package repository

import "github.com/tu-usuario/backoffice-api/internal/domain/entity"

// ExpenseRepository define el puerto de persistencia para gastos recurrentes de cliente.
type ExpenseRepository interface {
	Create(expense *entity.ClientExpense) error
	GetByID(id string) (*entity.ClientExpense, error)
	ListByClient(clientID string) ([]*entity.ClientExpense, error)
	Delete(id string) error
}
