package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrUpstream indica que la fuente de datos paginada falló; la operación completa se aborta.
	ErrUpstream = errors.New("fuente de datos no disponible")
)
