package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/application/proposal"
	"github.com/tu-usuario/backoffice-api/internal/domain"
)

// ProposalHandler maneja el ciclo de vida de propuestas comerciales. Los
// endpoints de firma y declinación son públicos: el token del enlace es la
// credencial.
type ProposalHandler struct {
	uc *proposal.UseCase
}

// NewProposalHandler construye el handler.
func NewProposalHandler(uc *proposal.UseCase) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

// Create godoc
// @Summary      Crear propuesta (genera y sube el PDF)
// @Tags         proposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProposalRequest  true  "client_id, title, amount"
// @Success      201   {object}  dto.ProposalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proposals [post]
func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido y amount no puede ser negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener propuesta por ID
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la propuesta"
// @Success      200  {object}  dto.ProposalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proposals/{id} [get]
func (h *ProposalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "propuesta no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar propuestas
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProposalListResponse
// @Router       /api/proposals [get]
func (h *ProposalHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByClient godoc
// @Summary      Listar propuestas de un cliente
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.ProposalResponse
// @Router       /api/clients/{id}/proposals [get]
func (h *ProposalHandler) ListByClient(c *fiber.Ctx) error {
	out, err := h.uc.ListByClient(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Send godoc
// @Summary      Enviar propuesta (acuña el token de firma)
// @Description  Solo propuestas en draft; 409 en cualquier otro estado.
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la propuesta"
// @Success      200  {object}  dto.ProposalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/proposals/{id}/send [post]
func (h *ProposalHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "propuesta no encontrada"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "solo una propuesta en draft se puede enviar"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Sign godoc
// @Summary      Firmar propuesta vía enlace público
// @Description  Sin autenticación: la posesión del token es la credencial.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        token  path  string  true  "Token de firma"
// @Param        body   body  dto.SignProposalRequest  true  "signer_name"
// @Success      200    {object}  dto.ProposalResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/proposals/sign/{token} [post]
func (h *ProposalHandler) Sign(c *fiber.Ctx) error {
	var in dto.SignProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SignByToken(c.Params("token"), in)
	return h.tokenResult(c, out, err)
}

// Decline godoc
// @Summary      Declinar propuesta vía enlace público
// @Tags         proposals
// @Produce      json
// @Param        token  path  string  true  "Token de firma"
// @Success      200    {object}  dto.ProposalResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/proposals/decline/{token} [post]
func (h *ProposalHandler) Decline(c *fiber.Ctx) error {
	out, err := h.uc.DeclineByToken(c.Params("token"))
	return h.tokenResult(c, out, err)
}

// tokenResult status HTTP para las operaciones por token de firma. El token
// inexistente responde 404 sin distinguir entre nunca-existió y ya-consumido.
func (h *ProposalHandler) tokenResult(c *fiber.Ctx, out *dto.ProposalResponse, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignToken) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "enlace inválido o vencido"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la propuesta ya no está pendiente de firma"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "signer_name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
