package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// SiteUseCase casos de uso CRUD para sedes. Eliminar una sede con stock está
// prohibido: primero se vacía (ver LedgerUseCase.EmptySite).
type SiteUseCase struct {
	repo      repository.SiteRepository
	stockRepo repository.SiteStockRepository
}

// NewSiteUseCase construye el caso de uso.
func NewSiteUseCase(repo repository.SiteRepository, stockRepo repository.SiteStockRepository) *SiteUseCase {
	return &SiteUseCase{repo: repo, stockRepo: stockRepo}
}

// Create crea una nueva sede activa.
func (uc *SiteUseCase) Create(in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	if in.Name == "" || !validSiteType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	site := &entity.Site{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Active:    true,
		ClientID:  in.ClientID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(site); err != nil {
		return nil, err
	}
	return toSiteResponse(site), nil
}

// GetByID obtiene una sede por ID.
func (uc *SiteUseCase) GetByID(id string) (*dto.SiteResponse, error) {
	site, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, nil
	}
	return toSiteResponse(site), nil
}

// Update actualiza una sede.
func (uc *SiteUseCase) Update(id string, in dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	site, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, nil
	}
	if in.Name != nil {
		site.Name = *in.Name
	}
	if in.Type != nil {
		if !validSiteType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		site.Type = *in.Type
	}
	if in.Active != nil {
		site.Active = *in.Active
	}
	site.UpdatedAt = time.Now()
	if err := uc.repo.Update(site); err != nil {
		return nil, err
	}
	return toSiteResponse(site), nil
}

// List lista sedes con paginación.
func (uc *SiteUseCase) List(limit, offset int) (*dto.SiteListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SiteResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSiteResponse(s))
	}
	return &dto.SiteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una sede. Si la sede conserva stock devuelve ErrSiteNotEmpty:
// el caller debe vaciarla primero con el traslado masivo.
func (uc *SiteUseCase) Delete(id string) error {
	site, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if site == nil {
		return domain.ErrNotFound
	}
	hasStock, err := uc.stockRepo.SiteHasStock(id)
	if err != nil {
		return err
	}
	if hasStock {
		return domain.ErrSiteNotEmpty
	}
	return uc.repo.Delete(id)
}

func validSiteType(t string) bool {
	switch t {
	case entity.SiteTypeWarehouse, entity.SiteTypeOffice, entity.SiteTypeClient, entity.SiteTypeProject:
		return true
	}
	return false
}

func toSiteResponse(s *entity.Site) *dto.SiteResponse {
	if s == nil {
		return nil
	}
	return &dto.SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		Active:    s.Active,
		ClientID:  s.ClientID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
