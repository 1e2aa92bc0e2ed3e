package http

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-analytics/internal/application/dto"
)

var validate = validator.New()

// FinancialsService contrato de métricas que consume el handler.
type FinancialsService interface {
	GetProductFinancials(ctx context.Context, productID string) (*dto.ProductFinancialsDTO, error)
	GetBatchFinancials(ctx context.Context, req dto.BatchFinancialsRequest) (*dto.BatchFinancialsResponse, error)
}

// FinancialsHandler endpoints de métricas financieras por producto.
type FinancialsHandler struct {
	uc      FinancialsService
	timeout time.Duration
	log     zerolog.Logger
}

// NewFinancialsHandler construye el handler. timeout acota cada petición (<= 0 → DefaultRequestTimeout).
func NewFinancialsHandler(uc FinancialsService, timeout time.Duration, log zerolog.Logger) *FinancialsHandler {
	return &FinancialsHandler{uc: uc, timeout: timeout, log: log}
}

// GetByProduct godoc
// @Summary      Métricas financieras de un producto
// @Description  Ingresos, costo, utilidad, margen, velocidad de venta, rotación y costo promedio,
//               calculados sobre el historial completo de ventas y compras.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductFinancialsDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/financials [get]
func (h *FinancialsHandler) GetByProduct(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de producto requerido"})
	}
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()
	out, err := h.uc.GetProductFinancials(ctx, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetBatch godoc
// @Summary      Métricas financieras de varios productos
// @Tags         analytics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchFinancialsRequest  true  "IDs de producto (1 a 100)"
// @Success      200  {object}  dto.BatchFinancialsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products/financials [post]
func (h *FinancialsHandler) GetBatch(c *fiber.Ctx) error {
	var req dto.BatchFinancialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo JSON inválido"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: validationMessage(err)})
	}
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()
	out, err := h.uc.GetBatchFinancials(ctx, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// validationMessage resume los errores del validador en un texto legible.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Namespace()+": "+fe.Tag())
	}
	return strings.Join(msgs, "; ")
}
