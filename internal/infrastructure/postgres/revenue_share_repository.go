package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.RevenueShareRepository = (*RevenueShareRepo)(nil)

// RevenueShareRepo implementación de RevenueShareRepository sobre PostgreSQL
// (usable con pool o tx). El término se persiste descompuesto en (type, value)
// y se reconstruye con los constructores de entity al leer.
type RevenueShareRepo struct {
	q Querier
}

// NewRevenueShareRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRevenueShareRepository(q Querier) *RevenueShareRepo {
	return &RevenueShareRepo{q: q}
}

// Create persiste un nuevo acuerdo.
func (r *RevenueShareRepo) Create(a *entity.RevenueShareAgreement) error {
	query := `
		INSERT INTO revenue_share_agreements (id, client_id, partner_id, type, value, priority, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ClientID, a.PartnerID, a.Term.Kind(), a.Term.Value(), a.Priority,
		a.StartDate, a.EndDate, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert revenue share agreement: %w", err)
	}
	return nil
}

// GetByID obtiene un acuerdo por ID.
func (r *RevenueShareRepo) GetByID(id string) (*entity.RevenueShareAgreement, error) {
	query := `
		SELECT id, client_id, partner_id, type, value, priority, start_date, end_date, created_at, updated_at
		FROM revenue_share_agreements WHERE id = $1`
	a, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get revenue share agreement: %w", err)
	}
	return a, nil
}

// Update actualiza término y fechas de un acuerdo. Priority solo cambia vía UpdatePriority.
func (r *RevenueShareRepo) Update(a *entity.RevenueShareAgreement) error {
	query := `
		UPDATE revenue_share_agreements
		SET type = $2, value = $3, start_date = $4, end_date = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Term.Kind(), a.Term.Value(), a.StartDate, a.EndDate, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update revenue share agreement: %w", err)
	}
	return nil
}

// Delete elimina un acuerdo. Los sobrevivientes NO se renumeran.
func (r *RevenueShareRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM revenue_share_agreements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete revenue share agreement: %w", err)
	}
	return nil
}

// ListByClient lista los acuerdos de un cliente SIEMPRE ordenados por prioridad
// ascendente: es la entrada directa del motor de cascada.
func (r *RevenueShareRepo) ListByClient(clientID string) ([]*entity.RevenueShareAgreement, error) {
	query := `
		SELECT id, client_id, partner_id, type, value, priority, start_date, end_date, created_at, updated_at
		FROM revenue_share_agreements WHERE client_id = $1 ORDER BY priority ASC`
	return r.list(query, clientID)
}

// ListByPartner lista los acuerdos de un socio (sobre todos sus clientes).
func (r *RevenueShareRepo) ListByPartner(partnerID string) ([]*entity.RevenueShareAgreement, error) {
	query := `
		SELECT id, client_id, partner_id, type, value, priority, start_date, end_date, created_at, updated_at
		FROM revenue_share_agreements WHERE partner_id = $1 ORDER BY client_id, priority ASC`
	return r.list(query, partnerID)
}

// UpdatePriority fija la prioridad de un acuerdo. Pensado para correr dentro
// de la transacción del reordenamiento (lote todo-o-nada).
func (r *RevenueShareRepo) UpdatePriority(id string, priority int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE revenue_share_agreements SET priority = $2, updated_at = now() WHERE id = $1`,
		id, priority,
	)
	if err != nil {
		return fmt.Errorf("update agreement priority: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update agreement priority: acuerdo %s no existe", id)
	}
	return nil
}

func (r *RevenueShareRepo) list(query string, arg any) ([]*entity.RevenueShareAgreement, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list revenue share agreements: %w", err)
	}
	defer rows.Close()
	var list []*entity.RevenueShareAgreement
	for rows.Next() {
		a, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revenue share agreement: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *RevenueShareRepo) scanOne(row pgx.Row) (*entity.RevenueShareAgreement, error) {
	var a entity.RevenueShareAgreement
	var kind string
	var value decimal.Decimal
	if err := row.Scan(&a.ID, &a.ClientID, &a.PartnerID, &kind, &value, &a.Priority,
		&a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if kind == entity.TermPercentage {
		a.Term = entity.PercentageTerm(value)
	} else {
		a.Term = entity.FlatRateTerm(value)
	}
	return &a, nil
}
