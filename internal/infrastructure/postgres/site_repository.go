package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

// SiteRepo implementación del puerto SiteRepository sobre PostgreSQL (usable con pool o tx).
type SiteRepo struct {
	q Querier
}

// NewSiteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

// Create persiste una nueva sede.
func (r *SiteRepo) Create(site *entity.Site) error {
	query := `
		INSERT INTO sites (id, name, type, active, client_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		site.ID, site.Name, site.Type, site.Active, nullIfEmpty(site.ClientID),
		site.CreatedAt, site.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// GetByID obtiene una sede por ID.
func (r *SiteRepo) GetByID(id string) (*entity.Site, error) {
	query := `
		SELECT id, name, type, active, client_id, created_at, updated_at
		FROM sites WHERE id = $1`
	site, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return site, nil
}

// Update actualiza una sede existente.
func (r *SiteRepo) Update(site *entity.Site) error {
	query := `
		UPDATE sites SET name = $2, type = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		site.ID, site.Name, site.Type, site.Active, site.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	return nil
}

// List lista sedes con paginación.
func (r *SiteRepo) List(limit, offset int) ([]*entity.Site, error) {
	query := `
		SELECT id, name, type, active, client_id, created_at, updated_at
		FROM sites ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Site
	for rows.Next() {
		site, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		list = append(list, site)
	}
	return list, rows.Err()
}

// Delete elimina una sede por ID. La guardia de "sede con stock" vive en el
// caso de uso, que consulta SiteHasStock antes de llamar aquí.
func (r *SiteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	return nil
}

func (r *SiteRepo) scanOne(row pgx.Row) (*entity.Site, error) {
	var s entity.Site
	var clientID *string
	if err := row.Scan(&s.ID, &s.Name, &s.Type, &s.Active, &clientID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if clientID != nil {
		s.ClientID = *clientID
	}
	return &s, nil
}
