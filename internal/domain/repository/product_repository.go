package repository

import (
	"context"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
)

// ProductRepository puerto de lectura del producto (DIP).
type ProductRepository interface {
	// GetStock devuelve el stock actual y los días en inventario calculados por el backend.
	// Devuelve (nil, nil) si el producto no existe.
	GetStock(ctx context.Context, productID string) (*entity.ProductStock, error)
}
