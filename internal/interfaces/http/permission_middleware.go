package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
)

// permissionChecker es el contrato mínimo que necesita el middleware para
// verificar visibilidad. Lo implementa *usecase.PermissionService; el uso de
// interfaz evita el import circular.
type permissionChecker interface {
	CanAccessPage(ctx context.Context, role, page string) (bool, error)
	CanAccessFeature(ctx context.Context, role, page, feature string) (bool, error)
}

// RequirePage devuelve un middleware Fiber que verifica si el rol del token
// puede ver la página. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 403 Forbidden  → el rol no tiene la página visible.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay role en el contexto, responde 401 (el AuthMiddleware debería haberlo puesto).
func RequirePage(page string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "role no encontrado en el token",
			})
		}

		allowed, err := checker.CanAccessPage(c.Context(), role, page)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PAGE_FORBIDDEN",
				Message: "la página '" + page + "' no está visible para este rol",
			})
		}

		return c.Next()
	}
}

// RequireFeature verifica una funcionalidad dentro de una página (ej. el botón
// de reordenar en la página de revenue share). Igual que RequirePage, requiere
// AuthMiddleware antes.
func RequireFeature(page, feature string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "role no encontrado en el token",
			})
		}

		allowed, err := checker.CanAccessFeature(c.Context(), role, page, feature)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_FORBIDDEN",
				Message: "la funcionalidad '" + feature + "' no está disponible para este rol",
			})
		}

		return c.Next()
	}
}
