package repository

import (
	"context"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

// SalesRepository puerto paginado de ítems de venta de un producto.
// Cada ítem trae su orden; si la implementación conoce todas las líneas de la orden
// (de todos los productos) las entrega en Order.Lines para permitir el prorrateo.
type SalesRepository interface {
	PageSaleItems(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.LineItem], error)
}

// PurchaseRepository puerto paginado de ítems de compra de un producto.
type PurchaseRepository interface {
	PagePurchaseItems(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.LineItem], error)
}
