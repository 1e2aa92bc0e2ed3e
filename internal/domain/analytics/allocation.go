package analytics

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// allocation es el aporte de un ítem a los ingresos (venta) o al costo (compra),
// junto con el desglose que se muestra en los reportes por línea.
type allocation struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// orderGroup agrupa los índices de los ítems que comparten orden.
type orderGroup struct {
	order   *entity.Order
	indexes []int
}

// groupByOrder agrupa por Order.ID conservando el orden de aparición.
// Ítems sin orden (o con orden sin ID) forman su propio grupo.
func groupByOrder(items []entity.LineItem) []orderGroup {
	groups := make([]orderGroup, 0, len(items))
	byKey := make(map[string]int, len(items))
	for i, it := range items {
		key := "item:" + strconv.Itoa(i)
		if it.Order != nil && it.Order.ID != "" {
			key = "order:" + it.Order.ID
		}
		if pos, ok := byKey[key]; ok {
			groups[pos].indexes = append(groups[pos].indexes, i)
			continue
		}
		byKey[key] = len(groups)
		groups = append(groups, orderGroup{order: it.Order, indexes: []int{i}})
	}
	return groups
}

// saleAllocations reparte los ingresos por ítem.
//
// Con TotalAmount y las líneas completas de la orden visibles:
// ingreso = subtotalItem / subtotalOrden × TotalAmount (subtotalOrden 0 → subtotalItem).
// En cualquier otro caso el ítem se considera neto: ingreso = subtotalItem.
func saleAllocations(items []entity.LineItem) []allocation {
	out := make([]allocation, len(items))
	for _, g := range groupByOrder(items) {
		o := g.order
		prorate := o != nil && o.TotalAmount != nil && o.LinesVisible()
		orderSubtotal := decimal.Zero
		if prorate {
			orderSubtotal = o.LinesSubtotal()
		}
		for _, i := range g.indexes {
			sub := items[i].Subtotal()
			a := allocation{Subtotal: sub, Total: sub}
			if prorate && orderSubtotal.IsPositive() {
				a.Total = sub.Mul(*o.TotalAmount).Div(orderSubtotal)
				a.Tax = percentOf(sub, o.TaxPercent)
				a.Discount = percentOf(sub, o.DiscountPercent)
			}
			out[i] = a
		}
	}
	return out
}

// purchaseAllocations reparte el costo de cada orden de compra entre sus ítems.
// La suma de los Total de un grupo es exactamente el costo del grupo.
func purchaseAllocations(items []entity.LineItem) []allocation {
	out := make([]allocation, len(items))
	for _, g := range groupByOrder(items) {
		o := g.order
		groupSubtotal := decimal.Zero
		for _, i := range g.indexes {
			groupSubtotal = groupSubtotal.Add(items[i].Subtotal())
		}

		if o == nil || o.TotalAmount == nil {
			// Sin total autoritativo: subtotal + impuesto - descuento, sin recortes.
			for _, i := range g.indexes {
				sub := items[i].Subtotal()
				a := allocation{Subtotal: sub}
				if o != nil {
					a.Tax = percentOf(sub, o.TaxPercent)
					a.Discount = percentOf(sub, o.DiscountPercent)
				}
				a.Total = sub.Add(a.Tax).Sub(a.Discount)
				out[i] = a
			}
			continue
		}

		// TotalAmount es el costo del grupo aunque la orden incluya otros productos.
		splitGroupCost(items, g.indexes, groupSubtotal, *o.TotalAmount, o, out)
	}
	return out
}

// splitGroupCost reparte groupCost por participación en el subtotal del grupo. El último ítem
// absorbe el residuo de redondeo. Con subtotal 0 el reparto es en partes iguales.
func splitGroupCost(
	items []entity.LineItem,
	indexes []int,
	groupSubtotal, groupCost decimal.Decimal,
	o *entity.Order,
	out []allocation,
) {
	assigned := decimal.Zero
	n := decimal.NewFromInt(int64(len(indexes)))
	for k, i := range indexes {
		sub := items[i].Subtotal()
		a := allocation{
			Subtotal: sub,
			Tax:      percentOf(sub, o.TaxPercent),
			Discount: percentOf(sub, o.DiscountPercent),
		}
		switch {
		case k == len(indexes)-1:
			a.Total = groupCost.Sub(assigned)
		case groupSubtotal.IsPositive():
			a.Total = sub.Mul(groupCost).Div(groupSubtotal)
		default:
			a.Total = groupCost.Div(n)
		}
		assigned = assigned.Add(a.Total)
		out[i] = a
	}
}

func percentOf(base decimal.Decimal, pct *decimal.Decimal) decimal.Decimal {
	if pct == nil {
		return decimal.Zero
	}
	return base.Mul(*pct).Div(hundred)
}

func sumTotals(allocs []allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Total)
	}
	return total
}
