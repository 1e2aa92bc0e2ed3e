package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/internal/domain/repository"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo ítems de venta desde las facturas. Las facturas en borrador o con error de
// generación no cuentan como venta.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

const salesFilter = `
	FROM invoice_details d
	JOIN invoices i       ON i.id = d.invoice_id
	LEFT JOIN customers c ON c.id = i.customer_id
	WHERE d.product_id = $1
	  AND i.dian_status NOT IN ('DRAFT', 'ERROR_GENERATION')`

// PageSaleItems devuelve una página de ítems de venta ordenada por fecha de factura.
// Cada factura referenciada trae todas sus líneas para el prorrateo del total.
func (r *SalesRepo) PageSaleItems(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.LineItem], error) {
	page, perPage = pageBounds(page, perPage)

	total, err := count(ctx, r.q, `SELECT COUNT(*)`+salesFilter, productID)
	if err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("sales.PageSaleItems count: %w", err)
	}

	query := `
	SELECT d.id, d.product_id, d.quantity, d.unit_price,
	       i.id, i.grand_total, i.date, COALESCE(c.name, '')` + salesFilter + `
	ORDER BY i.date, d.id
	LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, productID, perPage, paginate.Offset(page, perPage))
	if err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("sales.PageSaleItems: %w", err)
	}
	defer rows.Close()

	orders := make(map[string]*entity.Order)
	items := make([]entity.LineItem, 0, perPage)
	for rows.Next() {
		var (
			it       entity.LineItem
			qty      decimal.Decimal
			orderID  string
			grand    *decimal.Decimal
			date     *time.Time
			customer string
		)
		if err := rows.Scan(&it.ID, &it.ProductID, &qty, &it.UnitPrice, &orderID, &grand, &date, &customer); err != nil {
			return paginate.Page[entity.LineItem]{}, fmt.Errorf("sales.PageSaleItems scan: %w", err)
		}
		it.Quantity = units(qty)
		o, ok := orders[orderID]
		if !ok {
			o = &entity.Order{ID: orderID, TotalAmount: grand, Date: timeOrZero(date), CounterpartyName: customer}
			orders[orderID] = o
		}
		it.Order = o
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("sales.PageSaleItems rows: %w", err)
	}

	lines, err := loadOrderLines(ctx, r.q, `
	SELECT invoice_id, id, product_id, quantity, unit_price
	FROM invoice_details
	WHERE invoice_id = ANY($1)
	ORDER BY invoice_id, id`, orderIDs(orders))
	if err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("sales.PageSaleItems: %w", err)
	}
	attachLines(orders, lines)

	return paginate.Page[entity.LineItem]{Data: items, Meta: paginate.NewMeta(page, perPage, total)}, nil
}
