package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/dto"
)

// IngestAuthMiddleware valida el secreto compartido de la ingesta de eventos
// (header `Authorization: Bearer <INGEST_API_KEY>`). Las rutas de ingesta no
// llevan JWT: el caller es un sistema tercero, no un usuario.
func IngestAuthMiddleware(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INGEST_DISABLED", Message: "ingesta no configurada"})
		}
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_API_KEY", Message: "formato: Bearer <api key>"})
		}
		provided := strings.TrimSpace(parts[1])
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "api key inválida"})
		}
		return c.Next()
	}
}
