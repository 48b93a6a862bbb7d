package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// PartnerUseCase casos de uso CRUD para socios comerciales.
type PartnerUseCase struct {
	repo repository.PartnerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

// Create crea un nuevo socio.
func (uc *PartnerUseCase) Create(in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	partner := &entity.Partner{
		ID:           uuid.New().String(),
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// GetByID obtiene un socio por ID.
func (uc *PartnerUseCase) GetByID(id string) (*dto.PartnerResponse, error) {
	partner, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, nil
	}
	return toPartnerResponse(partner), nil
}

// Update actualiza un socio.
func (uc *PartnerUseCase) Update(id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	partner, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, nil
	}
	if in.Name != nil {
		partner.Name = *in.Name
	}
	if in.ContactEmail != nil {
		partner.ContactEmail = *in.ContactEmail
	}
	partner.UpdatedAt = time.Now()
	if err := uc.repo.Update(partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// List lista socios con paginación.
func (uc *PartnerUseCase) List(limit, offset int) (*dto.PartnerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartnerResponse(p))
	}
	return &dto.PartnerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un socio por ID.
func (uc *PartnerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	if p == nil {
		return nil
	}
	return &dto.PartnerResponse{
		ID:           p.ID,
		Name:         p.Name,
		ContactEmail: p.ContactEmail,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
