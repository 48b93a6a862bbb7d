package repository

import "github.com/tu-usuario/backoffice-api/internal/domain/entity"

// RevenueShareRepository define el puerto de persistencia para acuerdos de revenue share.
//
// ListByClient devuelve SIEMPRE ordenado ascendente por priority: es la entrada
// directa del motor de cascada. UpdatePriority existe para que el reordenamiento
// renumere la lista completa dentro de una única transacción.
type RevenueShareRepository interface {
	Create(agreement *entity.RevenueShareAgreement) error
	GetByID(id string) (*entity.RevenueShareAgreement, error)
	Update(agreement *entity.RevenueShareAgreement) error
	Delete(id string) error
	ListByClient(clientID string) ([]*entity.RevenueShareAgreement, error)
	ListByPartner(partnerID string) ([]*entity.RevenueShareAgreement, error)
	UpdatePriority(id string, priority int) error
}
