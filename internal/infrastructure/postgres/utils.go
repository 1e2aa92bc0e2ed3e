package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

// count ejecuta un SELECT COUNT(*) con los mismos filtros que la consulta paginada.
func count(ctx context.Context, q Querier, query string, args ...any) (int, error) {
	var total int
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// pageBounds normaliza página y tamaño (tamaño por defecto del colector).
func pageBounds(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = paginate.DefaultPageSize
	}
	return page, perPage
}

// units convierte la cantidad NUMERIC de la base a unidades enteras (se trunca la fracción).
func units(q decimal.Decimal) int64 {
	return q.IntPart()
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// loadOrderLines trae todas las líneas (de todos los productos) de las órdenes indicadas.
// query debe recibir $1 = []string de IDs de orden y devolver (order_id, id, product_id, quantity, unit_price).
func loadOrderLines(ctx context.Context, q Querier, query string, orderIDs []string) (map[string][]entity.OrderLine, error) {
	out := make(map[string][]entity.OrderLine, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var l entity.OrderLine
		var qty decimal.Decimal
		if err := rows.Scan(&orderID, &l.ID, &l.ProductID, &qty, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("order lines scan: %w", err)
		}
		l.Quantity = units(qty)
		out[orderID] = append(out[orderID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order lines rows: %w", err)
	}
	return out, nil
}

// attachLines marca cada orden como completamente visible con sus líneas cargadas.
func attachLines(orders map[string]*entity.Order, lines map[string][]entity.OrderLine) {
	for id, o := range orders {
		o.Lines = lines[id]
		if o.Lines == nil {
			o.Lines = []entity.OrderLine{}
		}
	}
}

func orderIDs(orders map[string]*entity.Order) []string {
	ids := make([]string, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}
	return ids
}
