package inventory

import (
	"context"

	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de inventario: precondición + mutación +
// registro de auditoría ocurren todos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.SiteStockRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
