package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo implementación de la tabla de visibilidad rol×página×funcionalidad
// sobre PostgreSQL (usable con pool o tx). Sin entrada = sin acceso.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// HasPageAccess informa si el rol puede ver la página (feature vacío = página completa).
func (r *PermissionRepo) HasPageAccess(ctx context.Context, role, page string) (bool, error) {
	var allowed bool
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(
			(SELECT allowed FROM permissions WHERE role = $1 AND page = $2 AND feature = ''),
			false)`,
		role, page,
	).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("has page access: %w", err)
	}
	return allowed, nil
}

// HasFeatureAccess informa si el rol puede usar la funcionalidad dentro de la página.
// Requiere además acceso a la página: una funcionalidad permitida en una página
// oculta sigue siendo inaccesible.
func (r *PermissionRepo) HasFeatureAccess(ctx context.Context, role, page, feature string) (bool, error) {
	pageOK, err := r.HasPageAccess(ctx, role, page)
	if err != nil {
		return false, err
	}
	if !pageOK {
		return false, nil
	}
	var allowed bool
	err = r.q.QueryRow(ctx,
		`SELECT COALESCE(
			(SELECT allowed FROM permissions WHERE role = $1 AND page = $2 AND feature = $3),
			false)`,
		role, page, feature,
	).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("has feature access: %w", err)
	}
	return allowed, nil
}
