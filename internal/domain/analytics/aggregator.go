// Package analytics contiene el motor de métricas financieras por producto.
//
// Convierte ítems de venta y de compra (denormalizados, cada uno con su orden opcional)
// en ingresos, costo, utilidad, margen, velocidad de venta y rotación. Todas las funciones
// son puras: no hacen I/O, no mutan sus entradas y se pueden llamar concurrentemente.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
)

// ComputeRevenue suma los ingresos de los ítems de venta con prorrateo por orden.
func ComputeRevenue(saleItems []entity.LineItem) decimal.Decimal {
	return sumTotals(saleAllocations(saleItems))
}

// ComputeCost suma el costo de los ítems de compra agrupados por orden de compra.
// Un costo negativo (descuento mayor al subtotal) no se recorta.
func ComputeCost(purchaseItems []entity.LineItem) decimal.Decimal {
	return sumTotals(purchaseAllocations(purchaseItems))
}

// ProfitMargin devuelve utilidad / ingresos × 100, o 0 si no hay ingresos.
func ProfitMargin(revenue, profit decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred)
}

// ComputeVelocity devuelve las unidades vendidas por mes sobre el rango de fechas observado.
//
// Con menos de dos fechas distintas se toma todo lo vendido como un solo período. Si no,
// se descartan los ítems sin fecha, meses = max(1, mesesEntre(última, primera) + 1) y
// velocidad = round(unidades fechadas / meses).
func ComputeVelocity(saleItems []entity.LineItem) decimal.Decimal {
	earliest, latest, distinct := dateSpan(saleItems)
	if distinct < 2 {
		return decimal.NewFromInt(TotalUnits(saleItems))
	}

	var units int64
	for _, it := range saleItems {
		if it.Order.HasDate() {
			units += it.Units()
		}
	}
	months := monthsBetween(latest, earliest) + 1
	if months < 1 {
		months = 1
	}
	return decimal.NewFromInt(units).Div(decimal.NewFromInt(int64(months))).Round(0)
}

// Turnover devuelve velocidad / stock actual, o 0 si no hay stock.
func Turnover(velocity, currentStock decimal.Decimal) decimal.Decimal {
	if !currentStock.IsPositive() {
		return decimal.Zero
	}
	return velocity.Div(currentStock)
}

// ComputeAverageUnitCost devuelve costo total / unidades compradas (0 sin unidades).
func ComputeAverageUnitCost(purchaseItems []entity.LineItem) decimal.Decimal {
	units := TotalUnits(purchaseItems)
	if units == 0 {
		return decimal.Zero
	}
	return ComputeCost(purchaseItems).Div(decimal.NewFromInt(units))
}

// TotalUnits suma las cantidades (negativas cuentan como 0).
func TotalUnits(items []entity.LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Units()
	}
	return total
}

// ComputeProductFinancials calcula todas las métricas de un producto.
// daysInStock es un valor del backend que solo se transporta.
func ComputeProductFinancials(
	productID string,
	saleItems, purchaseItems []entity.LineItem,
	currentStock decimal.Decimal,
	daysInStock *int,
) entity.ProductFinancials {
	revenue := ComputeRevenue(saleItems)
	cost := ComputeCost(purchaseItems)
	profit := revenue.Sub(cost)
	velocity := ComputeVelocity(saleItems)
	unitsPurchased := TotalUnits(purchaseItems)

	avgCost := decimal.Zero
	if unitsPurchased > 0 {
		avgCost = cost.Div(decimal.NewFromInt(unitsPurchased))
	}

	return entity.ProductFinancials{
		ProductID:             productID,
		TotalRevenue:          revenue,
		TotalCost:             cost,
		Profit:                profit,
		ProfitMarginPercent:   ProfitMargin(revenue, profit),
		UnitsSold:             TotalUnits(saleItems),
		UnitsPurchased:        unitsPurchased,
		SalesVelocityPerMonth: velocity,
		TurnoverRate:          Turnover(velocity, currentStock),
		AverageUnitCost:       avgCost,
		DaysInStock:           copyInt(daysInStock),
	}
}

// ComputeBatch calcula las métricas de varios productos a la vez. Los ítems se reparten por
// ProductID; los productos presentes solo en stock obtienen métricas en cero.
func ComputeBatch(
	saleItems, purchaseItems []entity.LineItem,
	stock map[string]entity.ProductStock,
) map[string]entity.ProductFinancials {
	sales := partitionByProduct(saleItems)
	purchases := partitionByProduct(purchaseItems)

	ids := make(map[string]struct{}, len(sales)+len(purchases)+len(stock))
	for id := range sales {
		ids[id] = struct{}{}
	}
	for id := range purchases {
		ids[id] = struct{}{}
	}
	for id := range stock {
		ids[id] = struct{}{}
	}

	out := make(map[string]entity.ProductFinancials, len(ids))
	for id := range ids {
		st := stock[id]
		out[id] = ComputeProductFinancials(id, sales[id], purchases[id], st.CurrentStock, st.DaysInStock)
	}
	return out
}

func partitionByProduct(items []entity.LineItem) map[string][]entity.LineItem {
	out := make(map[string][]entity.LineItem)
	for _, it := range items {
		out[it.ProductID] = append(out[it.ProductID], it)
	}
	return out
}

// dateSpan devuelve la primera y la última fecha válida y cuántas fechas distintas hay.
func dateSpan(items []entity.LineItem) (earliest, latest time.Time, distinct int) {
	seen := make(map[int64]struct{})
	dates := make([]time.Time, 0, len(items))
	for _, it := range items {
		if !it.Order.HasDate() {
			continue
		}
		d := it.Order.Date
		key := d.UnixNano()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates[0], dates[len(dates)-1], len(dates)
}

// monthsBetween devuelve los meses calendario completos entre earlier y later.
// Un mes se completa cuando el día (y luego la hora) de later alcanza los de earlier;
// si later es el último día de su mes, el mes cuenta como completo.
func monthsBetween(later, earlier time.Time) int {
	if later.Before(earlier) {
		return -monthsBetween(earlier, later)
	}
	earlier = earlier.In(later.Location())
	months := (later.Year()-earlier.Year())*12 + int(later.Month()) - int(earlier.Month())
	if months > 0 && !isLastDayOfMonth(later) && clockAfter(earlier, later) {
		months--
	}
	return months
}

// clockAfter compara día del mes y hora del día, ignorando año y mes.
func clockAfter(a, b time.Time) bool {
	if a.Day() != b.Day() {
		return a.Day() > b.Day()
	}
	ah, am, as := a.Clock()
	bh, bm, bs := b.Clock()
	if ah != bh {
		return ah > bh
	}
	if am != bm {
		return am > bm
	}
	if as != bs {
		return as > bs
	}
	return a.Nanosecond() > b.Nanosecond()
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
