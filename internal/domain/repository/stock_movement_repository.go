package repository

import (
	"context"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

// StockMovementRepository puerto paginado de movimientos de inventario de un producto (DIP).
// Las páginas se entregan en orden cronológico ascendente.
type StockMovementRepository interface {
	PageMovements(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.StockMovement], error)
}
