package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/internal/domain/repository"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos de inventario de un producto (kárdex).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// PageMovements lista movimientos en orden cronológico ascendente.
func (r *StockMovementRepo) PageMovements(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.StockMovement], error) {
	page, perPage = pageBounds(page, perPage)

	total, err := count(ctx, r.q, `SELECT COUNT(*) FROM inventory_movements WHERE product_id = $1`, productID)
	if err != nil {
		return paginate.Page[entity.StockMovement]{}, fmt.Errorf("movements.PageMovements count: %w", err)
	}

	const query = `
	SELECT id, product_id, COALESCE(warehouse_id::TEXT, ''), type, quantity,
	       COALESCE(unit_cost, 0), COALESCE(transaction_id::TEXT, ''), date
	FROM inventory_movements
	WHERE product_id = $1
	ORDER BY date ASC, created_at ASC, id ASC
	LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, productID, perPage, paginate.Offset(page, perPage))
	if err != nil {
		return paginate.Page[entity.StockMovement]{}, fmt.Errorf("movements.PageMovements: %w", err)
	}
	defer rows.Close()

	list := make([]entity.StockMovement, 0, perPage)
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity,
			&m.UnitCost, &m.Reference, &m.Date); err != nil {
			return paginate.Page[entity.StockMovement]{}, fmt.Errorf("movements.PageMovements scan: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return paginate.Page[entity.StockMovement]{}, fmt.Errorf("movements.PageMovements rows: %w", err)
	}
	return paginate.Page[entity.StockMovement]{Data: list, Meta: paginate.NewMeta(page, perPage, total)}, nil
}
