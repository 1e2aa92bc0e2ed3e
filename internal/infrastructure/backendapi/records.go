package backendapi

import (
	"strings"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/pkg/normalize"
)

// orderShape rutas de la cabecera de orden según sea venta o compra.
type orderShape struct {
	object     string // objeto anidado con la cabecera ("sale", "purchase")
	idPaths    []string
	datePaths  []string
	namePaths  []string
	totalPaths []string
	taxPaths   []string
	discPaths  []string
	linesPaths []string
}

var saleShape = orderShape{
	object:     "sale",
	idPaths:    []string{"sale.id", "sale_id"},
	datePaths:  normalize.SaleDatePaths,
	namePaths:  normalize.CustomerNamePaths,
	totalPaths: []string{"sale.total_amount", "sale.total", "sale.grand_total"},
	taxPaths:   []string{"sale.tax_percent", "sale.tax_rate"},
	discPaths:  []string{"sale.discount_percent", "sale.discount_rate"},
	linesPaths: []string{"sale.items", "sale.sale_items", "sale.lines"},
}

var purchaseShape = orderShape{
	object:     "purchase",
	idPaths:    []string{"purchase.id", "purchase_id"},
	datePaths:  normalize.PurchaseDatePaths,
	namePaths:  normalize.SupplierNamePaths,
	totalPaths: []string{"purchase.total_amount", "purchase.total", "purchase.grand_total"},
	taxPaths:   []string{"purchase.tax_percent", "purchase.tax_rate"},
	discPaths:  []string{"purchase.discount_percent", "purchase.discount_rate"},
	linesPaths: []string{"purchase.items", "purchase.purchase_items", "purchase.lines"},
}

func first(rec map[string]any, paths ...string) any {
	v, _ := normalize.ResolveFirstPresent(rec, paths...)
	return v
}

// lineItemFromRecord convierte un registro de ítem. Los ítems sin ningún dato de cabecera
// quedan sin orden.
func lineItemFromRecord(rec map[string]any, productID string, shape orderShape) entity.LineItem {
	it := entity.LineItem{
		ID:        normalize.String(first(rec, "id")),
		ProductID: normalize.String(first(rec, "product_id", "product.id")),
		Quantity:  normalize.Int(first(rec, "quantity", "qty")),
		UnitPrice: normalize.Decimal(first(rec, "unit_price", "price", "unit_cost")),
	}
	if it.ProductID == "" {
		it.ProductID = productID
	}
	it.Order = orderFromRecord(rec, shape)
	return it
}

func orderFromRecord(rec map[string]any, shape orderShape) *entity.Order {
	o := &entity.Order{
		ID:               normalize.String(first(rec, shape.idPaths...)),
		TotalAmount:      normalize.OptionalDecimal(first(rec, shape.totalPaths...)),
		TaxPercent:       normalize.OptionalDecimal(first(rec, shape.taxPaths...)),
		DiscountPercent:  normalize.OptionalDecimal(first(rec, shape.discPaths...)),
		Date:             normalize.Time(first(rec, shape.datePaths...)),
		CounterpartyName: strings.TrimSpace(normalize.String(first(rec, shape.namePaths...))),
		Lines:            orderLines(first(rec, shape.linesPaths...)),
	}
	if o.ID == "" && o.TotalAmount == nil && o.Date.IsZero() && o.CounterpartyName == "" &&
		normalize.Object(rec, shape.object) == nil {
		return nil
	}
	return o
}

// orderLines nil si el backend no envió las líneas de la orden; así el motor no prorratea.
func orderLines(v any) []entity.OrderLine {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	lines := make([]entity.OrderLine, 0, len(raw))
	for _, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, entity.OrderLine{
			ID:        normalize.String(first(m, "id")),
			ProductID: normalize.String(first(m, "product_id", "product.id")),
			Quantity:  normalize.Int(first(m, "quantity", "qty")),
			UnitPrice: normalize.Decimal(first(m, "unit_price", "price", "unit_cost")),
		})
	}
	return lines
}

func movementFromRecord(rec map[string]any, productID string) entity.StockMovement {
	m := entity.StockMovement{
		ID:          normalize.String(first(rec, "id")),
		ProductID:   normalize.String(first(rec, "product_id")),
		WarehouseID: normalize.String(first(rec, "warehouse_id", "warehouse.id")),
		Type:        strings.ToUpper(normalize.String(first(rec, "type", "movement_type"))),
		Quantity:    normalize.Decimal(first(rec, "quantity")),
		UnitCost:    normalize.Decimal(first(rec, "unit_cost", "cost")),
		Reference:   normalize.String(first(rec, "reference", "transaction_id", "notes")),
		Date:        normalize.Time(first(rec, "date", "created_at")),
	}
	if m.ProductID == "" {
		m.ProductID = productID
	}
	return m
}

func productFromRecord(rec map[string]any, productID string) entity.ProductStock {
	st := entity.ProductStock{
		ProductID:    normalize.String(first(rec, "id")),
		SKU:          normalize.String(first(rec, "sku")),
		Name:         normalize.String(first(rec, "name")),
		CurrentStock: normalize.Decimal(first(rec, "current_stock", "stock", "stock_quantity")),
	}
	if st.ProductID == "" {
		st.ProductID = productID
	}
	if v, ok := normalize.ResolveFirstPresent(rec, "days_in_stock"); ok {
		d := int(normalize.Int(v))
		st.DaysInStock = &d
	}
	return st
}
