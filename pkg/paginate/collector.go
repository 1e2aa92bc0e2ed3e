// Package paginate recorre una fuente paginada hasta el final y acumula todas las páginas
// en una sola colección, para que las exportaciones sean completas sin importar el tamaño
// de página que imponga el transporte.
package paginate

import (
	"context"
	"fmt"
)

// DefaultPageSize tamaño de página sugerido para exportaciones completas.
const DefaultPageSize = 200

// Meta metadatos de paginación tal como los entrega el backend.
type Meta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}

// Page una página de resultados.
type Page[T any] struct {
	Data []T   `json:"data"`
	Meta Meta `json:"meta"`
}

// FetchFunc obtiene una página (1-based). Los parámetros fijos de la consulta
// (p. ej. el ID del producto) los captura la clausura.
type FetchFunc[T any] func(ctx context.Context, page, pageSize int) (Page[T], error)

// FetchError error de una página concreta; la colección completa se descarta.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("paginate: página %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CollectAll pide la página 1 y continúa secuencialmente mientras CurrentPage < LastPage.
// Termina también si una página llega vacía (backend que no informa LastPage correctamente).
//
// La cancelación de ctx se revisa antes de cada petición: una vez cancelado no se emiten más
// llamadas a fetch. Ante cualquier error se devuelve nil; nunca un resultado parcial.
func CollectAll[T any](ctx context.Context, fetch FetchFunc[T], pageSize int) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []T
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := fetch(ctx, page, pageSize)
		if err != nil {
			return nil, &FetchError{Page: page, Err: err}
		}
		if len(p.Data) == 0 {
			break
		}
		all = append(all, p.Data...)
		if p.Meta.CurrentPage >= p.Meta.LastPage {
			break
		}
	}
	if all == nil {
		all = []T{}
	}
	return all, nil
}

// ForProduct adapta un método de repositorio con ID de producto a FetchFunc.
func ForProduct[T any](
	productID string,
	fn func(ctx context.Context, productID string, page, perPage int) (Page[T], error),
) FetchFunc[T] {
	return func(ctx context.Context, page, pageSize int) (Page[T], error) {
		return fn(ctx, productID, page, pageSize)
	}
}

// NewMeta calcula los metadatos de una página a partir del total de registros.
// LastPage es al menos 1 aunque no haya registros.
func NewMeta(page, perPage, total int) Meta {
	last := 1
	if perPage > 0 && total > 0 {
		last = (total + perPage - 1) / perPage
	}
	return Meta{CurrentPage: page, PerPage: perPage, LastPage: last, Total: total}
}

// Offset devuelve el desplazamiento SQL para la página (1-based).
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
