package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
)

// ReportRow fila de reporte por ítem de venta o compra, lista para hoja de cálculo o CSV.
// LineTotal sigue las mismas reglas de prorrateo que ComputeRevenue / ComputeCost, por lo que
// la suma de LineTotal de todas las filas coincide con el total del motor.
type ReportRow struct {
	ItemID         string
	OrderID        string
	Date           time.Time // cero si la orden no tiene fecha
	Counterparty   string
	Quantity       int64
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	LineTotal      decimal.Decimal
}

// SaleRows construye las filas de ventas.
func SaleRows(saleItems []entity.LineItem) []ReportRow {
	return buildRows(saleItems, saleAllocations(saleItems))
}

// PurchaseRows construye las filas de compras.
func PurchaseRows(purchaseItems []entity.LineItem) []ReportRow {
	return buildRows(purchaseItems, purchaseAllocations(purchaseItems))
}

// buildRows ordena por fecha ascendente; las filas sin fecha van al final y el
// orden de entrada se conserva en empates.
func buildRows(items []entity.LineItem, allocs []allocation) []ReportRow {
	rows := make([]ReportRow, len(items))
	for i, it := range items {
		r := ReportRow{
			ItemID:         it.ID,
			Quantity:       it.Units(),
			UnitPrice:      nonNegative(it.UnitPrice),
			Subtotal:       allocs[i].Subtotal,
			TaxAmount:      allocs[i].Tax,
			DiscountAmount: allocs[i].Discount,
			LineTotal:      allocs[i].Total,
		}
		if it.Order != nil {
			r.OrderID = it.Order.ID
			r.Date = it.Order.Date
			r.Counterparty = it.Order.CounterpartyName
		}
		rows[i] = r
	}
	sort.SliceStable(rows, func(i, j int) bool { return entity.DatedBefore(rows[i].Date, rows[j].Date) })
	return rows
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
