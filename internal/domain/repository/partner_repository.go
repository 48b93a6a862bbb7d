package repository

import "github.com/tu-usuario/backoffice-api/internal/domain/entity"

// PartnerRepository define el puerto de persistencia para Partner.
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	Update(partner *entity.Partner) error
	List(limit, offset int) ([]*entity.Partner, error)
	Delete(id string) error
}
