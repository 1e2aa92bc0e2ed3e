package http

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-analytics/internal/application/dto"
)

// ExportService contrato de exportación que consume el handler.
type ExportService interface {
	Export(ctx context.Context, productID string, req dto.ExportRequest) (*dto.ExportFile, error)
}

// ExportHandler descarga de reportes completos (XLSX, CSV, PDF).
type ExportHandler struct {
	uc      ExportService
	timeout time.Duration
	log     zerolog.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(uc ExportService, timeout time.Duration, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, timeout: timeout, log: log}
}

// Export godoc
// @Summary      Exportar historial de un producto
// @Description  Recorre todas las páginas de la fuente; si alguna falla no se genera archivo.
// @Tags         analytics
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Produce      application/pdf
// @Param        id      path   string  true   "ID del producto"
// @Param        kind    query  string  false  "sales | purchases | movements | summary (default sales)"
// @Param        format  query  string  false  "xlsx | csv | pdf (default xlsx)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de producto requerido"})
	}

	var req dto.ExportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: validationMessage(err)})
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()
	file, err := h.uc.Export(ctx, id, req)
	if err != nil {
		return writeError(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(file.Filename))
	return c.Status(fiber.StatusOK).Send(file.Content)
}
