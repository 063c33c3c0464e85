package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/novuscrm/novus-api/internal/application/auth"
	"github.com/novuscrm/novus-api/internal/application/comms"
	"github.com/novuscrm/novus-api/internal/application/deal"
	"github.com/novuscrm/novus-api/internal/application/ingest"
	"github.com/novuscrm/novus-api/internal/application/usecase"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	LeadUC        *usecase.LeadUseCase
	ProductUC     *usecase.ProductUseCase
	UserUC        *usecase.UserUseCase
	CreateDeal    *deal.CreateDealUseCase
	CommsUC       *comms.CommsUseCase
	IngestUC      *ingest.EventUseCase
	JWTSecret     string
	IngestAPIKey  string
	CookieMinutes int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(MetricsMiddleware())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieMinutes)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	v1 := api.Group("/v1")

	// Ingesta (API key estática; va ANTES del middleware JWT para que los
	// sistemas terceros no necesiten sesión)
	ingestHandler := NewIngestHandler(deps.IngestUC)
	ingestGroup := v1.Group("/ingest", IngestAuthMiddleware(deps.IngestAPIKey))
	ingestGroup.Post("/events", ingestHandler.Event)

	// Rutas protegidas (cookie de sesión o Bearer)
	protected := v1.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/me", authHandler.Me)

	// Leads
	leads := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/:id", leadHandler.GetByID)
	leads.Patch("/:id", leadHandler.Patch)

	// Products (mutaciones solo Admin/Manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Create)
	products.Patch("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Update)

	// Deals
	deals := protected.Group("/deals")
	dealHandler := NewDealHandler(deps.CreateDeal)
	deals.Post("/", dealHandler.Create)

	// Comms
	commsGroup := protected.Group("/comms")
	commsHandler := NewCommsHandler(deps.CommsUC)
	commsGroup.Post("/email", commsHandler.SendEmail)
	commsGroup.Post("/sms", commsHandler.SendSMS)

	// Users (solo Admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/:id", userHandler.Update)
}
