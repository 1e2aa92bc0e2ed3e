package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (+/-)
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
)

// StockMovement registro de movimiento de inventario de un producto.
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal // positivo entrada/ajuste+, negativo salida
	UnitCost    decimal.Decimal
	Reference   string // factura, orden de compra, nota de ajuste
	Date        time.Time
}
