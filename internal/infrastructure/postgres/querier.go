// Package postgres implementa los puertos de lectura de analítica sobre PostgreSQL (pgx/v5).
//
// Esquema esperado:
//
//	products(id, sku, name)
//	stock(product_id, warehouse_id, quantity)
//	customers(id, name)
//	invoices(id, customer_id, date, grand_total, dian_status)
//	invoice_details(id, invoice_id, product_id, quantity, unit_price)
//	suppliers(id, name)
//	purchases(id, supplier_id, date, total_amount, tax_percent, discount_percent)
//	purchase_items(id, purchase_id, product_id, quantity, unit_price)
//	inventory_movements(id, transaction_id, product_id, warehouse_id, type, quantity, unit_cost, date)
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstrae pool o tx; los repositorios solo leen.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)
