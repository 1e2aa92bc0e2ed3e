package dto

import "github.com/shopspring/decimal"

// ── Métricas financieras ──────────────────────────────────────────────────────

// ProductFinancialsDTO respuesta de GET /api/products/:id/financials.
// Montos redondeados a 2 decimales; la velocidad es unidades por mes.
type ProductFinancialsDTO struct {
	ProductID             string          `json:"product_id"`
	SKU                   string          `json:"sku,omitempty"`
	ProductName           string          `json:"product_name,omitempty"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	TotalCost             decimal.Decimal `json:"total_cost"`
	Profit                decimal.Decimal `json:"profit"`                 // TotalRevenue - TotalCost
	ProfitMarginPercent   decimal.Decimal `json:"profit_margin_percent"`  // Profit / TotalRevenue * 100
	UnitsSold             int64           `json:"units_sold"`
	UnitsPurchased        int64           `json:"units_purchased"`
	SalesVelocityPerMonth decimal.Decimal `json:"sales_velocity_per_month"`
	TurnoverRate          decimal.Decimal `json:"turnover_rate"`          // velocidad / stock actual
	AverageUnitCost       decimal.Decimal `json:"average_unit_cost"`
	CurrentStock          decimal.Decimal `json:"current_stock"`
	DaysInStock           *int            `json:"days_in_stock"`          // calculado por el backend
	SaleItemCount         int             `json:"sale_item_count"`
	PurchaseItemCount     int             `json:"purchase_item_count"`
}

// BatchFinancialsRequest cuerpo de POST /api/products/financials.
type BatchFinancialsRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1,max=100,dive,required"`
}

// BatchFinancialsResponse métricas de varios productos, en el orden solicitado.
type BatchFinancialsResponse struct {
	Items []ProductFinancialsDTO `json:"items"`
}
