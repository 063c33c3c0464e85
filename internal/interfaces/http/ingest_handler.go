package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/application/ingest"
	"github.com/novuscrm/novus-api/internal/domain"
)

// IngestHandler recibe eventos de comportamiento de sistemas terceros.
type IngestHandler struct {
	uc *ingest.EventUseCase
}

// NewIngestHandler construye el handler de ingesta.
func NewIngestHandler(uc *ingest.EventUseCase) *IngestHandler {
	return &IngestHandler{uc: uc}
}

// Event godoc
// @Summary      Ingestar evento de comportamiento
// @Description  Localiza el lead por email, registra la actividad y aplica el delta de engagement (tope 50) en una transacción. Autenticación por API key estática, no JWT.
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IngestEventRequest  true  "client_event_id, email, event_type, metadata?"
// @Success      200  {object}  dto.IngestEventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/ingest/events [post]
func (h *IngestHandler) Event(c *fiber.Ctx) error {
	var in dto.IngestEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Process(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			RecordIngestEvent(in.EventType, "invalid")
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y event_type son requeridos"})
		}
		if err == domain.ErrNotFound {
			RecordIngestEvent(in.EventType, "unknown_lead")
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ningún lead con ese email"})
		}
		RecordIngestEvent(in.EventType, "error")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo procesar el evento"})
	}
	RecordIngestEvent(in.EventType, "processed")
	return c.JSON(dto.IngestEventResponse{Success: true, Message: "evento procesado"})
}
