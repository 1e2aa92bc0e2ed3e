package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-analytics/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FinancialsUC   FinancialsService
	ExportUC       ExportService
	JWT            *jwt.Verifier
	RequestTimeout time.Duration // límite de cada petición; 0 → DefaultRequestTimeout
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT))

	products := protected.Group("/products")
	financialsHandler := NewFinancialsHandler(deps.FinancialsUC, deps.RequestTimeout, deps.Log)
	products.Post("/financials", financialsHandler.GetBatch)
	products.Get("/:id/financials", financialsHandler.GetByProduct)

	// Exportaciones: solo admin y analista
	exportHandler := NewExportHandler(deps.ExportUC, deps.RequestTimeout, deps.Log)
	products.Get("/:id/export", RequireRole(RoleAdmin, RoleAnalista), exportHandler.Export)
}
