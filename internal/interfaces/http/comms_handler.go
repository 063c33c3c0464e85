package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/comms"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain"
)

// CommsHandler maneja el envío de email y SMS a leads.
type CommsHandler struct {
	uc *comms.CommsUseCase
}

// NewCommsHandler construye el handler de comunicaciones.
func NewCommsHandler(uc *comms.CommsUseCase) *CommsHandler {
	return &CommsHandler{uc: uc}
}

// SendEmail godoc
// @Summary      Enviar email a un lead
// @Description  Envía y registra el intento (exitoso o fallido) como actividad en la línea de tiempo.
// @Tags         comms
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendEmailRequest  true  "lead_id, subject, body_html"
// @Success      200  {object}  dto.SendEmailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/v1/comms/email [post]
func (h *CommsHandler) SendEmail(c *fiber.Ctx) error {
	var in dto.SendEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SendEmail(GetScope(c), GetUserID(c), in)
	if err != nil {
		RecordDelivery("email", "failed")
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lead_id, subject y body_html son requeridos"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lead no encontrado"})
		case domain.ErrNoEmail:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_EMAIL", Message: "el lead no tiene email registrado"})
		case domain.ErrDeliveryFailed:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "DELIVERY_FAILED", Message: "el proveedor de correo rechazó el envío; quedó registrado como fallido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo enviar el email"})
	}
	RecordDelivery("email", "sent")
	return c.JSON(out)
}

// SendSMS godoc
// @Summary      Enviar SMS a un lead
// @Description  Envía vía la pasarela y registra el intento (exitoso o fallido) como actividad.
// @Tags         comms
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendSMSRequest  true  "lead_id, message"
// @Success      200  {object}  dto.SendSMSResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/v1/comms/sms [post]
func (h *CommsHandler) SendSMS(c *fiber.Ctx) error {
	var in dto.SendSMSRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SendSMS(GetScope(c), GetUserID(c), in)
	if err != nil {
		RecordDelivery("sms", "failed")
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lead_id y message son requeridos"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lead no encontrado"})
		case domain.ErrNoMobile:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_MOBILE", Message: "el lead no tiene móvil registrado"})
		case domain.ErrDeliveryFailed:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "DELIVERY_FAILED", Message: "la pasarela de SMS rechazó el envío; quedó registrado como fallido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo enviar el SMS"})
	}
	RecordDelivery("sms", "sent")
	return c.JSON(out)
}
