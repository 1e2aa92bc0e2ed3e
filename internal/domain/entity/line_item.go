package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine es una línea cualquiera de una orden (de cualquier producto).
// Se usa para conocer el subtotal completo de la orden al prorratear su total.
type OrderLine struct {
	ID        string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal devuelve cantidad × precio unitario.
func (l OrderLine) Subtotal() decimal.Decimal {
	return lineSubtotal(l.Quantity, l.UnitPrice)
}

// Order representa una venta o una compra (cabecera).
//
// TotalAmount, cuando existe, ya incluye impuesto y descuento y tiene prioridad sobre
// TaxPercent/DiscountPercent. Lines == nil significa que no se conoce el conjunto completo
// de líneas de la orden; un slice no nil es el conjunto completo (todos los productos).
type Order struct {
	ID               string
	TotalAmount      *decimal.Decimal
	TaxPercent       *decimal.Decimal
	DiscountPercent  *decimal.Decimal
	Date             time.Time // cero = sin fecha válida
	CounterpartyName string    // proveedor (compra) o cliente (venta)
	Lines            []OrderLine
}

// HasDate indica si la orden tiene una fecha utilizable para tendencias.
func (o *Order) HasDate() bool {
	return o != nil && !o.Date.IsZero()
}

// LinesVisible indica si se conoce el conjunto completo de líneas de la orden.
func (o *Order) LinesVisible() bool {
	return o != nil && o.Lines != nil
}

// LinesSubtotal suma los subtotales de todas las líneas conocidas de la orden.
func (o *Order) LinesSubtotal() decimal.Decimal {
	total := decimal.Zero
	if o == nil {
		return total
	}
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// LineItem es un ítem de venta o de compra de un producto.
// Un LineItem sin Order se trata como una orden de un solo ítem, sin impuesto ni descuento.
type LineItem struct {
	ID        string
	ProductID string
	Quantity  int64           // unidades, >= 0
	UnitPrice decimal.Decimal // valor por unidad, >= 0
	Order     *Order
}

// Subtotal devuelve cantidad × precio unitario (negativos se tratan como 0).
func (i LineItem) Subtotal() decimal.Decimal {
	return lineSubtotal(i.Quantity, i.UnitPrice)
}

// Units devuelve la cantidad saneada (negativos → 0).
func (i LineItem) Units() int64 {
	if i.Quantity < 0 {
		return 0
	}
	return i.Quantity
}

func lineSubtotal(qty int64, price decimal.Decimal) decimal.Decimal {
	if qty <= 0 || price.IsNegative() {
		return decimal.Zero
	}
	return decimal.NewFromInt(qty).Mul(price)
}
