package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/universocelular/unicel-server-web/internal/auth"
	"github.com/universocelular/unicel-server-web/internal/config"
	"github.com/universocelular/unicel-server-web/internal/handler"
	"github.com/universocelular/unicel-server-web/internal/repository"
	"github.com/universocelular/unicel-server-web/internal/service"
	"github.com/universocelular/unicel-server-web/internal/validator"
	"github.com/universocelular/unicel-server-web/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg)

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.Seed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to seed service catalog")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Universo Celular API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	validate := validator.New()

	// Repositories
	brandRepo := repository.NewBrandRepository(pool)
	modelRepo := repository.NewModelRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	popupRepo := repository.NewPopupRepository(pool)
	paymentRepo := repository.NewPaymentMethodRepository(pool)

	// Services
	catalogService := service.NewCatalogService(brandRepo, modelRepo, serviceRepo, paymentRepo)
	couponService := service.NewCouponService(couponRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	popupService := service.NewPopupService(popupRepo)
	quoteService := service.NewQuoteService(catalogService, settingsService, couponService, cfg.Quote.WhatsAppNumber)

	// Auth
	issuer := auth.NewTokenIssuer(cfg.Admin.JWTSecret, time.Duration(cfg.Admin.TokenTTLHours)*time.Hour)

	// Handlers
	healthHandler := handler.NewHealthHandler(pool)
	authHandler := handler.NewAuthHandler(cfg.Admin, issuer, validate)
	catalogHandler := handler.NewCatalogHandler(catalogService, validate)
	quoteHandler := handler.NewQuoteHandler(quoteService, validate)
	couponHandler := handler.NewCouponHandler(couponService, catalogService, validate)
	popupHandler := handler.NewPopupHandler(popupService, validate)
	settingsHandler := handler.NewSettingsHandler(settingsService, validate)

	app.Get("/health", healthHandler.Check)

	// Public storefront routes
	api := app.Group("/api")
	api.Post("/auth/login", authHandler.Login)
	api.Get("/catalog", catalogHandler.GetCatalog)
	api.Get("/brands", catalogHandler.ListBrands)
	api.Get("/models", catalogHandler.ListModels)
	api.Get("/models/:id", catalogHandler.GetModel)
	api.Get("/services", catalogHandler.ListServices)
	api.Get("/countries", catalogHandler.ListCountries)
	api.Get("/carriers", catalogHandler.ListCarriers)
	api.Get("/payment-methods", catalogHandler.ListPaymentMethods)
	api.Post("/quotes", quoteHandler.GetQuote)
	api.Post("/coupons/validate", couponHandler.ValidateCoupon)
	api.Get("/popups/resolve", popupHandler.ResolvePopup)

	// Admin routes behind JWT auth
	admin := api.Group("/admin", auth.RequireAdmin(issuer))
	admin.Post("/brands", catalogHandler.CreateBrand)
	admin.Put("/brands/:id", catalogHandler.UpdateBrand)
	admin.Delete("/brands/:id", catalogHandler.DeleteBrand)
	admin.Post("/models", catalogHandler.CreateModel)
	admin.Put("/models/:id", catalogHandler.UpdateModel)
	admin.Put("/models/:id/overrides", catalogHandler.UpdateModelOverrides)
	admin.Delete("/models/:id", catalogHandler.DeleteModel)
	admin.Post("/services", catalogHandler.CreateService)
	admin.Put("/services/:id", catalogHandler.UpdateService)
	admin.Delete("/services/:id", catalogHandler.DeleteService)
	admin.Get("/coupons", couponHandler.ListCoupons)
	admin.Post("/coupons", couponHandler.CreateCoupon)
	admin.Put("/coupons/:id", couponHandler.UpdateCoupon)
	admin.Delete("/coupons/:id", couponHandler.DeleteCoupon)
	admin.Get("/popups", popupHandler.ListPopups)
	admin.Post("/popups", popupHandler.CreatePopup)
	admin.Put("/popups/:id", popupHandler.UpdatePopup)
	admin.Delete("/popups/:id", popupHandler.DeletePopup)
	admin.Get("/settings", settingsHandler.GetSettings)
	admin.Put("/settings/discount-mode", settingsHandler.UpdateDiscountMode)
	admin.Put("/settings/free-mode", settingsHandler.UpdateFreeMode)
	admin.Put("/settings/rate", settingsHandler.UpdateRate)
	admin.Get("/payment-methods", catalogHandler.ListPaymentMethods)
	admin.Post("/payment-methods", catalogHandler.CreatePaymentMethod)
	admin.Put("/payment-methods/:id", catalogHandler.UpdatePaymentMethod)
	admin.Delete("/payment-methods/:id", catalogHandler.DeletePaymentMethod)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
