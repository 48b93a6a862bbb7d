package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/application/revshare"
	"github.com/tu-usuario/backoffice-api/internal/domain"
)

// RevshareHandler maneja los acuerdos de revenue share de un cliente:
// alta, edición, baja, listado ordenado y reordenamiento.
type RevshareHandler struct {
	uc *revshare.UseCase
}

// NewRevshareHandler construye el handler.
func NewRevshareHandler(uc *revshare.UseCase) *RevshareHandler {
	return &RevshareHandler{uc: uc}
}

// Create godoc
// @Summary      Crear acuerdo de revenue share para un cliente
// @Tags         revenue-shares
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.CreateAgreementRequest  true  "partner_id, type, value, start_date"
// @Success      201   {object}  dto.AgreementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/revenue-shares [post]
func (h *RevshareHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAgreementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateAgreement(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente o socio no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser percentage (0-100) o flat_rate (>= 0); fechas YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar acuerdos del cliente (orden de cascada)
// @Tags         revenue-shares
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.AgreementResponse
// @Router       /api/clients/{id}/revenue-shares [get]
func (h *RevshareHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByClient(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reorder godoc
// @Summary      Mover un acuerdo a otra posición de la cascada
// @Description  Renumera la lista completa del cliente (0..N-1) en una transacción.
// @Tags         revenue-shares
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.ReorderRequest  true  "agreement_id, new_index"
// @Success      200   {array}  dto.AgreementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/revenue-shares/reorder [post]
func (h *RevshareHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AgreementID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "agreement_id es requerido"})
	}
	out, err := h.uc.Reorder(c.Context(), c.Params("id"), in.AgreementID, in.NewIndex)
	if err != nil {
		if errors.Is(err, domain.ErrAgreementNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el acuerdo no pertenece a este cliente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar término o fechas de un acuerdo
// @Description  No modifica la prioridad; el orden solo cambia vía reorder.
// @Tags         revenue-shares
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        agreementId  path  string  true  "ID del acuerdo"
// @Param        body  body  dto.UpdateAgreementRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.AgreementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/revenue-shares/{agreementId} [put]
func (h *RevshareHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAgreementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateAgreement(c.Params("agreementId"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acuerdo no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser percentage (0-100) o flat_rate (>= 0); fechas YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un acuerdo
// @Description  Los acuerdos sobrevivientes conservan su prioridad (huecos tolerados).
// @Tags         revenue-shares
// @Security     Bearer
// @Param        agreementId  path  string  true  "ID del acuerdo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/revenue-shares/{agreementId} [delete]
func (h *RevshareHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteAgreement(c.Params("agreementId")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acuerdo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
