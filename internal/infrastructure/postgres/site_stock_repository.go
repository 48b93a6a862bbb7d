package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.SiteStockRepository = (*SiteStockRepo)(nil)

// SiteStockRepo implementación de SiteStockRepository sobre PostgreSQL (usable con pool o tx).
type SiteStockRepo struct {
	q Querier
}

// NewSiteStockRepository construye el adaptador de stock por sede. Pasar pool o tx (Querier).
func NewSiteStockRepository(q Querier) *SiteStockRepo {
	return &SiteStockRepo{q: q}
}

// Get obtiene el stock actual de un ítem en una sede.
// Sin fila devuelve cantidad 0 (fila en cero equivale a ausencia de fila).
func (r *SiteStockRepo) Get(itemID, siteID string) (*entity.SiteStock, error) {
	query := `
		SELECT item_id, site_id, quantity, updated_at
		FROM site_stock WHERE item_id = $1 AND site_id = $2`
	var s entity.SiteStock
	err := r.q.QueryRow(context.Background(), query, itemID, siteID).Scan(
		&s.ItemID, &s.SiteID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.SiteStock{ItemID: itemID, SiteID: siteID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get site stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// La verificación de precondición y la resta posterior no pueden cruzarse con otra sesión.
func (r *SiteStockRepo) GetForUpdate(itemID, siteID string) (*entity.SiteStock, error) {
	query := `
		SELECT item_id, site_id, quantity, updated_at
		FROM site_stock WHERE item_id = $1 AND site_id = $2
		FOR UPDATE`
	var s entity.SiteStock
	err := r.q.QueryRow(context.Background(), query, itemID, siteID).Scan(
		&s.ItemID, &s.SiteID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.SiteStock{ItemID: itemID, SiteID: siteID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get site stock for update: %w", err)
	}
	return &s, nil
}

// AddQuantity suma delta a la cantidad de la fila (la crea si no existe).
// El UPDATE del conflicto suma sobre el valor ya comprometido en la tabla:
// dos primeras entradas concurrentes del mismo par ítem+sede se acumulan en
// lugar de pisarse, aunque ninguna haya visto la fila de la otra al leer.
func (r *SiteStockRepo) AddQuantity(itemID, siteID string, delta int64) error {
	query := `
		INSERT INTO site_stock (item_id, site_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, site_id)
		DO UPDATE SET quantity = site_stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, itemID, siteID, delta)
	if err != nil {
		return fmt.Errorf("add site stock quantity: %w", err)
	}
	return nil
}

// ListByItem desglose de stock de un ítem por sede.
func (r *SiteStockRepo) ListByItem(itemID string) ([]*entity.SiteStock, error) {
	query := `
		SELECT item_id, site_id, quantity, updated_at
		FROM site_stock WHERE item_id = $1 ORDER BY site_id`
	return r.list(query, itemID)
}

// ListBySite stock de todos los ítems de una sede.
func (r *SiteStockRepo) ListBySite(siteID string) ([]*entity.SiteStock, error) {
	query := `
		SELECT item_id, site_id, quantity, updated_at
		FROM site_stock WHERE site_id = $1 ORDER BY item_id`
	return r.list(query, siteID)
}

func (r *SiteStockRepo) list(query string, arg any) ([]*entity.SiteStock, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list site stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.SiteStock
	for rows.Next() {
		var s entity.SiteStock
		if err := rows.Scan(&s.ItemID, &s.SiteID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TotalByItem suma la cantidad del ítem sobre todas las sedes, en tiempo de lectura.
func (r *SiteStockRepo) TotalByItem(itemID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM site_stock WHERE item_id = $1`,
		itemID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total by item: %w", err)
	}
	return total, nil
}

// SiteHasStock informa si la sede conserva alguna fila con cantidad > 0.
func (r *SiteStockRepo) SiteHasStock(siteID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM site_stock WHERE site_id = $1 AND quantity > 0)`,
		siteID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("site has stock: %w", err)
	}
	return exists, nil
}
