package entity

import "github.com/shopspring/decimal"

// ProductFinancials métricas financieras derivadas de un producto.
// Es una vista: se recalcula con cada cambio de entradas y nunca se persiste.
type ProductFinancials struct {
	ProductID             string
	TotalRevenue          decimal.Decimal
	TotalCost             decimal.Decimal
	Profit                decimal.Decimal // TotalRevenue - TotalCost
	ProfitMarginPercent   decimal.Decimal // Profit / TotalRevenue * 100; 0 si no hay ingresos
	UnitsSold             int64
	UnitsPurchased        int64
	SalesVelocityPerMonth decimal.Decimal
	TurnoverRate          decimal.Decimal // velocidad / stock actual; 0 sin stock
	AverageUnitCost       decimal.Decimal
	DaysInStock           *int // valor calculado por el backend, solo se transporta
}
