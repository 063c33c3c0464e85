package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/application/usecase"
	"github.com/novuscrm/novus-api/internal/domain"
)

// LeadHandler maneja listado, detalle, alta y patch de leads.
type LeadHandler struct {
	uc *usecase.LeadUseCase
}

// NewLeadHandler construye el handler de leads.
func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// List godoc
// @Summary      Listar leads
// @Description  Paginado y filtrado por las marcas del caller. sort=heat ordena por engagement+fit.
// @Tags         leads
// @Produce      json
// @Param        page   query  int     false  "página (desde 1)"
// @Param        limit  query  int     false  "tamaño de página (máx 100)"
// @Param        stage  query  string  false  "etapa de calificación"
// @Param        sort   query  string  false  "heat para ordenar por score"
// @Success      200  {object}  dto.LeadListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/v1/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	stage := c.Query("stage")
	sortByHeat := c.Query("sort") == "heat"

	out, err := h.uc.List(GetScope(c), stage, sortByHeat, page, limit)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de listado inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo listar leads"})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de lead
// @Description  Lead con línea de tiempo y deals. 404 tanto si no existe como si está fuera del alcance de marcas.
// @Tags         leads
// @Produce      json
// @Param        id  path  string  true  "lead id"
// @Success      200  {object}  dto.LeadDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/v1/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"), GetScope(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lead no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo obtener el lead"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "brand_id, name, mobile, email?"
// @Success      201  {object}  dto.LeadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ScopeErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/v1/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	scope := GetScope(c)
	out, err := h.uc.Create(c.Context(), scope, GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "brand_id, name y mobile son requeridos"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ScopeErrorResponse{
				Code:     "FORBIDDEN",
				Message:  "sin acceso a este alcance de marca",
				Required: []string{in.BrandID},
				Yours:    scope.BrandIDs,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo crear el lead"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Patch godoc
// @Summary      Actualizar lead (parcial)
// @Description  Solo campos de la allow-list; el diff se audita en la misma transacción. Payload idéntico al estado actual no escribe nada.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "lead id"
// @Param        body  body  dto.UpdateLeadRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.UpdateLeadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/v1/leads/{id} [patch]
func (h *LeadHandler) Patch(c *fiber.Ctx) error {
	var in dto.UpdateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Patch(c.Context(), GetScope(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lead no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campos de actualización inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo actualizar el lead"})
	}
	return c.JSON(out)
}
