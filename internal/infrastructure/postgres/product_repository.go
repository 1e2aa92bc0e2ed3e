package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lectura de producto y stock consolidado de todas las bodegas.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetStock suma el stock de todas las bodegas. DaysInStock son los días desde la última
// entrada (IN); nil si el producto nunca tuvo entradas.
func (r *ProductRepo) GetStock(ctx context.Context, productID string) (*entity.ProductStock, error) {
	const query = `
	SELECT p.id, p.sku, p.name,
	       COALESCE((SELECT SUM(s.quantity) FROM stock s WHERE s.product_id = p.id), 0),
	       (SELECT (CURRENT_DATE - MAX(m.date)::DATE)
	          FROM inventory_movements m
	         WHERE m.product_id = p.id AND m.type = 'IN')
	FROM products p
	WHERE p.id = $1`

	var st entity.ProductStock
	var days *int32
	err := r.q.QueryRow(ctx, query, productID).Scan(&st.ProductID, &st.SKU, &st.Name, &st.CurrentStock, &days)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("products.GetStock: %w", err)
	}
	if days != nil {
		d := int(*days)
		st.DaysInStock = &d
	}
	return &st, nil
}
