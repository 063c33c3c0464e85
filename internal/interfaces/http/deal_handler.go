package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/deal"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/application/usecase"
	"github.com/novuscrm/novus-api/internal/domain"
)

// DealHandler maneja la creación atómica de deals.
type DealHandler struct {
	uc *deal.CreateDealUseCase
}

// NewDealHandler construye el handler de deals.
func NewDealHandler(uc *deal.CreateDealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create godoc
// @Summary      Crear deal
// @Description  Crea el deal con snapshot de precio, calcula el plan EMI si aplica, transiciona el lead a Won y audita — todo en una transacción. 404 si lead o producto no existen o están fuera de alcance.
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealRequest  true  "lead_id, sku_id, payment_model, emi_months?"
// @Success      201  {object}  dto.CreateDealResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/v1/deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.uc.Create(c.Context(), GetScope(c), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lead_id, sku_id y payment_model válidos son requeridos (EMI exige emi_months >= 2)"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lead o producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo crear el deal"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateDealResponse{
		Success: true,
		Data:    usecase.ToDealResponse(created),
	})
}
