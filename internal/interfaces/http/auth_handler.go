package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/auth"
	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/domain"
)

// AuthHandler maneja login, logout y echo de identidad.
type AuthHandler struct {
	uc            *auth.AuthUseCase
	cookieMinutes int
}

// NewAuthHandler construye el handler de auth. cookieMinutes es la vigencia
// de la cookie de sesión (misma que el JWT).
func NewAuthHandler(uc *auth.AuthUseCase, cookieMinutes int) *AuthHandler {
	return &AuthHandler{uc: uc, cookieMinutes: cookieMinutes}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida credenciales y deja el JWT en la cookie HTTP-only novus_auth.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	token, user, err := h.uc.Login(in)
	if err != nil {
		if err == domain.ErrUnauthorized || err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo procesar el login"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.cookieMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(dto.LoginResponse{Success: true, User: *user})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Expirar la cookie en el pasado la elimina del navegador.
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

// Me godoc
// @Summary      Identidad del token
// @Description  Devuelve la identidad decodificada de la sesión actual.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/v1/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	scope := GetScope(c)
	brands := scope.BrandIDs
	if brands == nil {
		brands = []string{}
	}
	return c.JSON(dto.MeResponse{
		UserID:   GetUserID(c),
		Role:     scope.Role,
		BrandIDs: brands,
	})
}
