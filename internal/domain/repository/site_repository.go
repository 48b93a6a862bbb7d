package repository

import "github.com/tu-usuario/backoffice-api/internal/domain/entity"

// SiteRepository define el puerto de persistencia para sedes.
type SiteRepository interface {
	Create(site *entity.Site) error
	GetByID(id string) (*entity.Site, error)
	Update(site *entity.Site) error
	List(limit, offset int) ([]*entity.Site, error)
	Delete(id string) error
}
