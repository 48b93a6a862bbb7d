package repository

import "context"

// PermissionRepository es la tabla booleana de visibilidad rol×página×funcionalidad.
// El core algorítmico es agnóstico a permisos: solo el middleware HTTP consulta esto.
type PermissionRepository interface {
	HasPageAccess(ctx context.Context, role, page string) (bool, error)
	HasFeatureAccess(ctx context.Context, role, page, feature string) (bool, error)
}
