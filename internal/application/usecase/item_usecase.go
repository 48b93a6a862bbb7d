package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para ítems de inventario. Las cantidades NUNCA
// se editan aquí: entran y salen vía el ledger (check-in/check-out/traslado).
// TotalQuantity y LowStock se derivan en cada lectura sumando el stock por sede.
type ItemUseCase struct {
	repo      repository.ItemRepository
	stockRepo repository.SiteStockRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, stockRepo repository.SiteStockRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, stockRepo: stockRepo}
}

// Create crea un nuevo ítem. El SKU, cuando se indica, debe ser único.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.MinQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, _ := uc.repo.GetBySKU(in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		Name:        in.Name,
		SKU:         in.SKU,
		Category:    in.Category,
		CostPrice:   in.CostPrice,
		SalePrice:   in.SalePrice,
		MinQuantity: in.MinQuantity,
		VendorID:    in.VendorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	// Ítem recién creado: total 0 por definición
	return toItemResponse(item, 0), nil
}

// GetByID obtiene un ítem con su total derivado y la señal de stock bajo.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	total, err := uc.stockRepo.TotalByItem(id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, total), nil
}

// Update actualiza un ítem. No acepta cantidades: eso es del ledger.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != item.SKU {
		if *in.SKU != "" {
			existing, _ := uc.repo.GetBySKU(*in.SKU)
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		item.SKU = *in.SKU
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.SalePrice = *in.SalePrice
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinQuantity = *in.MinQuantity
	}
	if in.VendorID != nil {
		item.VendorID = *in.VendorID
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	total, err := uc.stockRepo.TotalByItem(id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, total), nil
}

// List lista ítems con paginación, cada uno con su total derivado.
func (uc *ItemUseCase) List(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		total, err := uc.stockRepo.TotalByItem(it.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toItemResponse(it, total))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un ítem por ID.
func (uc *ItemUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// LowStock devuelve los ítems cuyo total derivado alcanzó el umbral mínimo.
func (uc *ItemUseCase) LowStock(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0)
	for _, it := range list {
		total, err := uc.stockRepo.TotalByItem(it.ID)
		if err != nil {
			return nil, err
		}
		if total <= it.MinQuantity {
			items = append(items, *toItemResponse(it, total))
		}
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toItemResponse(it *entity.InventoryItem, total int64) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		SKU:           it.SKU,
		Category:      it.Category,
		CostPrice:     it.CostPrice,
		SalePrice:     it.SalePrice,
		MinQuantity:   it.MinQuantity,
		VendorID:      it.VendorID,
		TotalQuantity: total,
		LowStock:      total <= it.MinQuantity,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
