package entity

import "github.com/shopspring/decimal"

// ProductStock instantánea del producto tal como la entrega la fuente de datos:
// stock actual y días en inventario (calculado fuera de este servicio).
type ProductStock struct {
	ProductID    string
	SKU          string
	Name         string
	CurrentStock decimal.Decimal
	DaysInStock  *int
}
