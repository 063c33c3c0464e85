package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/pkg/jwt"
)

// CookieName nombre de la cookie de sesión HTTP-only.
const CookieName = "novus_auth"

// Locals keys para la identidad decodificada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalBrandIDs = "brand_ids"
)

// AuthMiddleware valida el JWT de la cookie de sesión (o, en su defecto, del
// header Authorization Bearer) y extrae identidad a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(CookieName)
		if tokenString == "" {
			// Fallback para clientes no-navegador (scripts, integraciones).
			authHeader := c.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión no iniciada"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalBrandIDs, claims.BrandIDs)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetScope devuelve el alcance de marcas del caller (después del middleware de auth).
func GetScope(c *fiber.Ctx) brand.Scope {
	var s brand.Scope
	if v, ok := c.Locals(LocalRole).(string); ok {
		s.Role = v
	}
	if v, ok := c.Locals(LocalBrandIDs).([]string); ok {
		s.BrandIDs = v
	}
	return s
}
