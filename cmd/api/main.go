package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/karnifashions/catalog-api/internal/application/auth"
	appcatalog "github.com/karnifashions/catalog-api/internal/application/catalog"
	"github.com/karnifashions/catalog-api/internal/application/report"
	infrapdf "github.com/karnifashions/catalog-api/internal/infrastructure/pdf"
	"github.com/karnifashions/catalog-api/internal/infrastructure/postgres"
	httpRouter "github.com/karnifashions/catalog-api/internal/interfaces/http"
	"github.com/karnifashions/catalog-api/pkg/config"
	"github.com/karnifashions/catalog-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: el login fallará hasta configurarlo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de PostgreSQL")
	}
	defer pool.Close()

	policy := postgres.RetryPolicy{
		Timeout:    cfg.DB.QueryTimeout,
		MaxRetries: cfg.DB.MaxRetries,
	}
	productRepo := postgres.NewProductRepository(pool, policy)
	stockRepo := postgres.NewStockRepository(pool, policy)
	catalogRepo := postgres.NewCatalogRepository(pool, policy)
	imageRepo := postgres.NewImageRepository(pool, policy)
	userRepo := postgres.NewUserRepository(pool, policy)
	txRunner := postgres.NewTxRunner(pool, policy)
	health := postgres.NewHealthChecker(pool)
	if err := health.Ping(ctx); err != nil {
		// Sin base se sigue sirviendo: las consultas responden 503 y /health "degraded".
		log.Warn().Err(err).Msg("PostgreSQL no responde al iniciar")
	}

	catalogUC := appcatalog.NewUseCase(productRepo, stockRepo, catalogRepo, imageRepo, txRunner, log)

	// PDF: resumen de stock para el personal
	pdfGenerator := infrapdf.NewMarotoStockReport(cfg.App.Name)
	reportUC := report.NewStockReportUseCase(stockRepo, pdfGenerator, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderRequestID,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Karni Catalog API",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(cfg.App.Name + " en ejecución")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := health.Ping(c.UserContext()); err != nil {
			log.Warn().Err(err).Msg("health: base de datos no responde")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		ReportUC:  reportUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
