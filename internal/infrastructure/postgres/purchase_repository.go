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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo ítems de compra desde las órdenes de compra a proveedores.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchasesFilter = `
	FROM purchase_items pi
	JOIN purchases pu     ON pu.id = pi.purchase_id
	LEFT JOIN suppliers s ON s.id  = pu.supplier_id
	WHERE pi.product_id = $1`

// PagePurchaseItems devuelve una página de ítems de compra ordenada por fecha de compra.
func (r *PurchaseRepo) PagePurchaseItems(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.LineItem], error) {
	page, perPage = pageBounds(page, perPage)

	total, err := count(ctx, r.q, `SELECT COUNT(*)`+purchasesFilter, productID)
	if err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("purchases.PagePurchaseItems count: %w", err)
	}

	query := `
	SELECT pi.id, pi.product_id, pi.quantity, pi.unit_price,
	       pu.id, pu.total_amount, pu.tax_percent, pu.discount_percent, pu.date,
	       COALESCE(s.name, '')` + purchasesFilter + `
	ORDER BY pu.date, pi.id
	LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, productID, perPage, paginate.Offset(page, perPage))
	if err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("purchases.PagePurchaseItems: %w", err)
	}
	defer rows.Close()

	orders := make(map[string]*entity.Order)
	items := make([]entity.LineItem, 0, perPage)
	for rows.Next() {
		var (
			it            entity.LineItem
			qty           decimal.Decimal
			orderID       string
			totalAmount   *decimal.Decimal
			taxPct, discP *decimal.Decimal
			date          *time.Time
			supplier      string
		)
		if err := rows.Scan(&it.ID, &it.ProductID, &qty, &it.UnitPrice,
			&orderID, &totalAmount, &taxPct, &discP, &date, &supplier); err != nil {
			return paginate.Page[entity.LineItem]{}, fmt.Errorf("purchases.PagePurchaseItems scan: %w", err)
		}
		it.Quantity = units(qty)
		o, ok := orders[orderID]
		if !ok {
			o = &entity.Order{
				ID:               orderID,
				TotalAmount:      totalAmount,
				TaxPercent:       taxPct,
				DiscountPercent:  discP,
				Date:             timeOrZero(date),
				CounterpartyName: supplier,
			}
			orders[orderID] = o
		}
		it.Order = o
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("purchases.PagePurchaseItems rows: %w", err)
	}

	lines, err := loadOrderLines(ctx, r.q, `
	SELECT purchase_id, id, product_id, quantity, unit_price
	FROM purchase_items
	WHERE purchase_id = ANY($1)
	ORDER BY purchase_id, id`, orderIDs(orders))
	if err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("purchases.PagePurchaseItems: %w", err)
	}
	attachLines(orders, lines)

	return paginate.Page[entity.LineItem]{Data: items, Meta: paginate.NewMeta(page, perPage, total)}, nil
}
