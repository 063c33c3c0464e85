package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ingestEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_events_total",
			Help: "Total number of ingested behavioural events",
		},
		[]string{"event_type", "outcome"},
	)

	commsDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comms_deliveries_total",
			Help: "Total number of outbound email/SMS deliveries",
		},
		[]string{"channel", "status"},
	)
)

// MetricsMiddleware instrumenta cada request con contador y latencia.
// Usa c.Route().Path (la plantilla, ej. /api/v1/leads/:id) para no explotar
// la cardinalidad con IDs.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		// El ErrorHandler de Fiber corre después de este middleware, así que
		// el status final de un handler que devuelve error se deriva del error
		// mismo y no de la response todavía sin escribir.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		httpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordIngestEvent registra un evento de ingesta procesado.
func RecordIngestEvent(eventType, outcome string) {
	ingestEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// RecordDelivery registra un intento de entrega saliente (email/sms).
func RecordDelivery(channel, status string) {
	commsDeliveries.WithLabelValues(channel, status).Inc()
}
