package revshare

import (
	"context"

	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de acuerdos atado a esa tx. El reordenamiento renumera N filas:
// o se persisten todas o ninguna (nada de updates secuenciales sueltos).
type TxRunner interface {
	Run(ctx context.Context, fn func(agreementRepo repository.RevenueShareRepository) error) error
}
