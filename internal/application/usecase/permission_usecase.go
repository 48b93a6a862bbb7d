package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// PermissionService verifica la visibilidad rol×página×funcionalidad.
// Es el único punto de la aplicación que conoce la lógica de permisos; el rol
// admin accede a todo sin consultar la tabla.
type PermissionService struct {
	repo repository.PermissionRepository
}

// NewPermissionService construye el servicio de permisos.
func NewPermissionService(repo repository.PermissionRepository) *PermissionService {
	return &PermissionService{repo: repo}
}

// CanAccessPage informa si el rol puede ver la página.
// Devuelve false (sin error) si no hay entrada para el par rol×página.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *PermissionService) CanAccessPage(ctx context.Context, role, page string) (bool, error) {
	if role == "" || page == "" {
		return false, fmt.Errorf("permission: role y page son obligatorios")
	}
	if role == entity.RoleAdmin {
		return true, nil
	}
	return s.repo.HasPageAccess(ctx, role, page)
}

// CanAccessFeature informa si el rol puede usar la funcionalidad dentro de la página.
func (s *PermissionService) CanAccessFeature(ctx context.Context, role, page, feature string) (bool, error) {
	if role == "" || page == "" || feature == "" {
		return false, fmt.Errorf("permission: role, page y feature son obligatorios")
	}
	if role == entity.RoleAdmin {
		return true, nil
	}
	return s.repo.HasFeatureAccess(ctx, role, page, feature)
}
