package repository

import "github.com/tu-usuario/backoffice-api/internal/domain/entity"

// SiteStockRepository define el puerto para consultar/actualizar stock por sede+ítem.
// Usado dentro de transacciones para garantizar consistencia.
//
// Los totales por ítem son SIEMPRE agregados en tiempo de lectura sobre las
// filas por sede; nunca se materializa un contador.
type SiteStockRepository interface {
	Get(itemID, siteID string) (*entity.SiteStock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(itemID, siteID string) (*entity.SiteStock, error)
	// AddQuantity suma delta a la cantidad de la fila en una sola sentencia
	// atómica, creándola si no existe. Sobre una fila aún inexistente el
	// SELECT FOR UPDATE no bloquea nada: la escritura tiene que ser un delta,
	// nunca una cantidad absoluta calculada de esa lectura.
	AddQuantity(itemID, siteID string, delta int64) error
	ListByItem(itemID string) ([]*entity.SiteStock, error)
	ListBySite(siteID string) ([]*entity.SiteStock, error)
	TotalByItem(itemID string) (int64, error)
	// SiteHasStock informa si la sede conserva alguna fila con cantidad > 0.
	SiteHasStock(siteID string) (bool, error)
}
