package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/novuscrm/novus-api/internal/interfaces/http"
	pkgjwt "github.com/novuscrm/novus-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "novus-api-test"
	testExpMin    = 60
)

// buildProtectedApp construye una app Fiber mínima con AuthMiddleware y un
// handler que expone la identidad cargada en locals.
func buildProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		scope := apphttp.GetScope(c)
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"role":      scope.Role,
			"brand_ids": scope.BrandIDs,
		})
	})
	return app
}

// tokenFor genera un JWT con el rol y las marcas indicadas.
func tokenFor(t *testing.T, role string, brandIDs []string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, brandIDs, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — cookie de sesión y fallback Bearer
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CookieDeSesion(t *testing.T) {
	app := buildProtectedApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: tokenFor(t, "Agent", []string{"LB", "SP"})})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la cookie novus_auth debe autenticar la petición")

	var body struct {
		UserID   string   `json:"user_id"`
		Role     string   `json:"role"`
		BrandIDs []string `json:"brand_ids"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, "Agent", body.Role)
	assert.Equal(t, []string{"LB", "SP"}, body.BrandIDs)
}

func TestAuthMiddleware_BearerFallback(t *testing.T) {
	app := buildProtectedApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "Manager", []string{"LB"}))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"sin cookie, el header Bearer debe autenticar")
}

func TestAuthMiddleware_SinCredenciales_Retorna401(t *testing.T) {
	app := buildProtectedApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildProtectedApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: "token.invalido.aqui"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildProtectedApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Agent", []string{"LB"}, testIssuer, -1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: tok})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token expirado debe retornar 401")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func buildRoleApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/restricted",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func doRoleRequest(t *testing.T, app *fiber.App, role string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: tokenFor(t, role, []string{"LB"})})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildRoleApp("Admin")
	resp := doRoleRequest(t, app, "Admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"Admin debe poder acceder a ruta restringida a Admin")
}

func TestRequireRole_ManagerAccedeRutaMultiRol(t *testing.T) {
	app := buildRoleApp("Admin", "Manager")
	resp := doRoleRequest(t, app, "Manager")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"Manager debe poder acceder a ruta que permite Admin o Manager")
}

func TestRequireRole_AgentBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildRoleApp("Admin")
	resp := doRoleRequest(t, app, "Agent")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"Agent no debe poder acceder a ruta restringida a Admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireBrands — guardia de alcance de marca a nivel de ruta
// ──────────────────────────────────────────────────────────────────────────────

func buildBrandApp(required ...string) *fiber.App {
	app := fiber.New()
	app.Get("/branded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireBrands(required...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func doBrandRequest(t *testing.T, app *fiber.App, role string, brandIDs []string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/branded", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: tokenFor(t, role, brandIDs)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireBrands_InterseccionPermite(t *testing.T) {
	app := buildBrandApp("LB", "SP")
	resp := doBrandRequest(t, app, "Agent", []string{"SP", "XX"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"basta una marca en común para pasar la guardia")
}

func TestRequireBrands_SinInterseccion_403ConListas(t *testing.T) {
	app := buildBrandApp("LB")
	resp := doBrandRequest(t, app, "Agent", []string{"SP"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body struct {
		Code     string   `json:"code"`
		Required []string `json:"required"`
		Yours    []string `json:"yours"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Equal(t, []string{"LB"}, body.Required,
		"el 403 debe incluir las marcas requeridas por la ruta")
	assert.Equal(t, []string{"SP"}, body.Yours,
		"el 403 debe incluir las marcas del caller")
}

func TestRequireBrands_AdminPasaSiempre(t *testing.T) {
	app := buildBrandApp("LB")
	resp := doBrandRequest(t, app, "Admin", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"Admin ignora la guardia de marcas aunque no tenga ninguna asignada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests middleware de ingesta — API key estática
// ──────────────────────────────────────────────────────────────────────────────

const testIngestKey = "ingest-key-para-tests"

func buildIngestApp(apiKey string) *fiber.App {
	app := fiber.New()
	app.Post("/events",
		apphttp.IngestAuthMiddleware(apiKey),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func TestIngestAuth_KeyCorrecta(t *testing.T) {
	app := buildIngestApp(testIngestKey)

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	req.Header.Set("Authorization", "Bearer "+testIngestKey)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIngestAuth_KeyIncorrecta_Retorna401(t *testing.T) {
	app := buildIngestApp(testIngestKey)

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	req.Header.Set("Authorization", "Bearer otra-key")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIngestAuth_SinHeader_Retorna401(t *testing.T) {
	app := buildIngestApp(testIngestKey)

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con rol y marcas
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConMarcas(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Manager", []string{"LB", "SP"}, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "Manager", claims.Role)
	assert.Equal(t, []string{"LB", "SP"}, claims.BrandIDs)
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Admin", nil, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
