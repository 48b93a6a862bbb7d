package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/application/inventory"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// InventoryHandler maneja los movimientos de stock (check-in, check-out,
// traslado), la consulta de stock por ítem y el historial de auditoría.
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CheckIn godoc
// @Summary      Registrar entrada de stock en una sede
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CheckInRequest  true  "item_id, site_id, quantity"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/check-in [post]
func (h *InventoryHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.CheckIn(c.Context(), in.ItemID, in.SiteID, in.Quantity, in.Note, GetUserID(c))
	return h.movementResult(c, err)
}

// CheckOut godoc
// @Summary      Registrar salida de stock de una sede
// @Description  Rechaza con 409 si la sede no tiene cantidad suficiente.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CheckOutRequest  true  "item_id, site_id, quantity"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/check-out [post]
func (h *InventoryHandler) CheckOut(c *fiber.Ctx) error {
	var in dto.CheckOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.CheckOut(c.Context(), in.ItemID, in.SiteID, in.Quantity, in.Note, GetUserID(c))
	return h.movementResult(c, err)
}

// Transfer godoc
// @Summary      Trasladar stock entre sedes
// @Description  Atómico: o se mueve todo o no se mueve nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.TransferRequest  true  "item_id, from_site_id, to_site_id, quantity"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Transfer(c.Context(), in.ItemID, in.FromSiteID, in.ToSiteID, in.Quantity, GetUserID(c))
	return h.movementResult(c, err)
}

// ItemStock godoc
// @Summary      Stock de un ítem desglosado por sede
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [get]
func (h *InventoryHandler) ItemStock(c *fiber.Ctx) error {
	item, rows, total, lowStock, err := h.uc.ItemStock(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.ItemStockResponse{
		ItemID:   item.ID,
		Total:    total,
		LowStock: lowStock,
		BySite:   make([]dto.SiteStockLine, 0, len(rows)),
	}
	for _, r := range rows {
		out.BySite = append(out.BySite, dto.SiteStockLine{SiteID: r.SiteID, Quantity: r.Quantity})
	}
	return c.JSON(out)
}

// HistoryByItem godoc
// @Summary      Historial de transacciones de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/items/{id}/transactions [get]
func (h *InventoryHandler) HistoryByItem(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	txs, err := h.uc.HistoryByItem(c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toTransactionList(txs, limit, offset))
}

// HistoryBySite godoc
// @Summary      Historial de transacciones de una sede
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la sede"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/sites/{id}/transactions [get]
func (h *InventoryHandler) HistoryBySite(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	txs, err := h.uc.HistoryBySite(c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toTransactionList(txs, limit, offset))
}

// movementResult traduce el resultado de un movimiento de stock al status HTTP.
func (h *InventoryHandler) movementResult(c *fiber.Ctx, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "la sede no tiene stock suficiente"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem o sede no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser positiva y las sedes distintas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toTransactionList(txs []*entity.InventoryTransaction, limit, offset int) dto.TransactionListResponse {
	out := dto.TransactionListResponse{
		Items: make([]dto.TransactionResponse, 0, len(txs)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, tx := range txs {
		out.Items = append(out.Items, dto.TransactionResponse{
			ID:        tx.ID,
			ItemID:    tx.ItemID,
			SiteID:    tx.SiteID,
			Type:      tx.Type,
			Quantity:  tx.Quantity,
			Note:      tx.Note,
			CreatedBy: tx.CreatedBy,
			CreatedAt: tx.CreatedAt,
		})
	}
	return out
}
