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

	appanalytics "github.com/jhoicas/inventario-analytics/internal/application/analytics"
	"github.com/jhoicas/inventario-analytics/internal/application/dto"
	"github.com/jhoicas/inventario-analytics/internal/domain/repository"
	"github.com/jhoicas/inventario-analytics/internal/infrastructure/backendapi"
	"github.com/jhoicas/inventario-analytics/internal/infrastructure/export"
	"github.com/jhoicas/inventario-analytics/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-analytics/internal/interfaces/http"
	"github.com/jhoicas/inventario-analytics/pkg/config"
	"github.com/jhoicas/inventario-analytics/pkg/jwt"
	"github.com/jhoicas/inventario-analytics/pkg/logger"
)

// sources puertos de lectura de la fuente elegida con DATA_SOURCE.
type sources struct {
	sales     repository.SalesRepository
	purchases repository.PurchaseRepository
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_source", cfg.App.DataSource).
		Msg("iniciando aplicación")

	verifier, err := jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("verificador JWT")
	}

	ctx := context.Background()
	src, err := openSources(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("fuente de datos")
	}
	defer src.close()

	opts := appanalytics.Options{
		PageSize:         cfg.Analytics.PageSize,
		BatchConcurrency: cfg.Analytics.BatchConcurrency,
	}
	financialsUC := appanalytics.NewFinancialsUseCase(
		src.sales, src.purchases, src.products, opts, log.Component("financials"),
	)
	exportUC := appanalytics.NewExportUseCase(
		src.sales, src.purchases, src.movements, src.products,
		map[string]appanalytics.ReportWriter{
			dto.ExportFormatXLSX: export.NewXLSXWriter(),
			dto.ExportFormatCSV:  export.NewCSVWriter(),
			dto.ExportFormatPDF:  export.NewPDFWriter(cfg.Analytics.CurrencyLocale),
		},
		opts, log.Component("export"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 120, // exportaciones grandes recorren todas las páginas
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Analytics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "data_source": cfg.App.DataSource})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FinancialsUC:   financialsUC,
		ExportUC:       exportUC,
		JWT:            verifier,
		RequestTimeout: time.Duration(cfg.HTTP.RequestTimeoutSeconds) * time.Second,
		Log:            log.Component("http"),
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

// openSources conecta PostgreSQL o el backend REST según la configuración.
func openSources(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sources, error) {
	if cfg.App.DataSource == config.DataSourceAPI {
		client := backendapi.NewClient(backendapi.Config{
			BaseURL:           cfg.Backend.BaseURL,
			Token:             cfg.Backend.Token,
			Timeout:           time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.Backend.RequestsPerSecond,
		}, log.Component("backendapi"))
		return &sources{
			sales: client, purchases: client, movements: client, products: client,
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &sources{
		sales:     postgres.NewSalesRepository(pool),
		purchases: postgres.NewPurchaseRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		products:  postgres.NewProductRepository(pool),
		close:     pool.Close,
	}, nil
}
