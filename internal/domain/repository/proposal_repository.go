package repository

import "github.com/tu-usuario/backoffice-api/internal/domain/entity"

// ProposalRepository define el puerto de persistencia para propuestas comerciales.
type ProposalRepository interface {
	Create(proposal *entity.Proposal) error
	GetByID(id string) (*entity.Proposal, error)
	GetBySignToken(token string) (*entity.Proposal, error)
	Update(proposal *entity.Proposal) error
	ListByClient(clientID string) ([]*entity.Proposal, error)
	List(limit, offset int) ([]*entity.Proposal, error)
}
