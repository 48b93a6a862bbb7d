package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto recurrente de cliente.
func (r *ExpenseRepo) Create(expense *entity.ClientExpense) error {
	query := `
		INSERT INTO client_expenses (id, client_id, concept, periodicity, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.ClientID, expense.Concept, expense.Periodicity,
		expense.Amount, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.ClientExpense, error) {
	query := `
		SELECT id, client_id, concept, periodicity, amount, created_at
		FROM client_expenses WHERE id = $1`
	var e entity.ClientExpense
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.ClientID, &e.Concept, &e.Periodicity, &e.Amount, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client expense: %w", err)
	}
	return &e, nil
}

// ListByClient lista los gastos recurrentes de un cliente.
func (r *ExpenseRepo) ListByClient(clientID string) ([]*entity.ClientExpense, error) {
	query := `
		SELECT id, client_id, concept, periodicity, amount, created_at
		FROM client_expenses WHERE client_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list client expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClientExpense
	for rows.Next() {
		var e entity.ClientExpense
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Concept, &e.Periodicity, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina un gasto por ID.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM client_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client expense: %w", err)
	}
	return nil
}
