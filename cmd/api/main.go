package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/novuscrm/novus-api/internal/application/auth"
	appcomms "github.com/novuscrm/novus-api/internal/application/comms"
	appdeal "github.com/novuscrm/novus-api/internal/application/deal"
	"github.com/novuscrm/novus-api/internal/application/ingest"
	"github.com/novuscrm/novus-api/internal/application/usecase"
	"github.com/novuscrm/novus-api/internal/infrastructure/mail"
	"github.com/novuscrm/novus-api/internal/infrastructure/postgres"
	"github.com/novuscrm/novus-api/internal/infrastructure/sms"
	httpRouter "github.com/novuscrm/novus-api/internal/interfaces/http"
	"github.com/novuscrm/novus-api/pkg/config"
	"github.com/novuscrm/novus-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	dealRepo := postgres.NewDealRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	leadUC := usecase.NewLeadUseCase(leadRepo, activityRepo, dealRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo, txRunner)
	userUC := usecase.NewUserUseCase(userRepo, txRunner)
	createDealUC := appdeal.NewCreateDealUseCase(txRunner, leadRepo, productRepo)
	ingestUC := ingest.NewEventUseCase(txRunner, leadRepo)

	emailSender := mail.NewSMTPSender(cfg.SMTP)
	smsSender := sms.NewGatewayClient(cfg.SMS)
	commsUC := appcomms.NewCommsUseCase(leadRepo, activityRepo, emailSender, smsSender)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Novus CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		LeadUC:        leadUC,
		ProductUC:     productUC,
		UserUC:        userUC,
		CreateDeal:    createDealUC,
		CommsUC:       commsUC,
		IngestUC:      ingestUC,
		JWTSecret:     cfg.JWT.Secret,
		IngestAPIKey:  cfg.Ingest.APIKey,
		CookieMinutes: cfg.JWT.Expiration,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
