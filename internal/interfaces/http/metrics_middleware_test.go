package http

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMetricsApp() *fiber.App {
	app := fiber.New()
	app.Use(MetricsMiddleware())
	app.Get("/metricas/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/metricas/no-existe", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/metricas/explota", func(c *fiber.Ctx) error {
		return errors.New("fallo interno")
	})
	return app
}

func TestMetrics_RespuestaDirecta_CuentaStatusEscrito(t *testing.T) {
	app := buildMetricsApp()

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metricas/ok", "200"))
	resp, err := app.Test(httptest.NewRequest("GET", "/metricas/ok", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metricas/ok", "200"))
	assert.Equal(t, before+1, after)
}

func TestMetrics_HandlerConFiberError_CuentaElStatusDelError(t *testing.T) {
	app := buildMetricsApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/metricas/no-existe", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// El middleware ve el error antes de que el ErrorHandler escriba la
	// respuesta: el contador debe reflejar 404, no el 200 por defecto.
	got404 := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metricas/no-existe", "404"))
	got200 := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metricas/no-existe", "200"))
	assert.Equal(t, 1.0, got404)
	assert.Equal(t, 0.0, got200)
}

func TestMetrics_HandlerConErrorGenerico_CuentaComo500(t *testing.T) {
	app := buildMetricsApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/metricas/explota", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metricas/explota", "500"))
	assert.Equal(t, 1.0, got)
}
