package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-analytics/internal/application/dto"
	"github.com/jhoicas/inventario-analytics/internal/domain"
)

// DefaultRequestTimeout límite de una petición cuando el router no recibe uno.
const DefaultRequestTimeout = 90 * time.Second

// requestContext contexto con plazo para la petición. fasthttp no cancela el contexto cuando
// el cliente se desconecta, así que el plazo es lo único que detiene la recolección.
func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(c.UserContext(), timeout)
}

// writeError traduce errores de dominio a status HTTP. Los 5xx se registran.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, body := classify(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("error en petición")
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: "no fue posible leer el historial completo; intente de nuevo"}
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Code: "TIMEOUT", Message: "la consulta excedió el tiempo máximo"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"}
	}
}
