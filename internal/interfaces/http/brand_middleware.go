package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain/entity"
)

// RequireRole devuelve un middleware Fiber que exige uno de los roles dados.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no encontrada en el token"})
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente para esta operación"})
	}
}

// RequireBrands devuelve un middleware Fiber que exige intersección entre las
// marcas del caller y las requeridas por la ruta. Admin pasa siempre. El 403
// incluye ambas listas (trade-off de divulgación aceptado para depuración).
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireBrands(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := GetScope(c)
		if scope.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no encontrada en el token"})
		}
		if scope.Role == entity.RoleAdmin {
			return c.Next()
		}
		if scope.Intersects(required) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ScopeErrorResponse{
			Code:     "FORBIDDEN",
			Message:  "sin acceso a este alcance de marca",
			Required: required,
			Yours:    scope.BrandIDs,
		})
	}
}
