package inventory

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
)

// MovementRow fila del kárdex de un producto: el movimiento más el saldo y el costo
// promedio vigentes después de aplicarlo.
type MovementRow struct {
	MovementID  string
	Date        time.Time
	Type        string
	WarehouseID string
	Reference   string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	Balance     decimal.Decimal
	AverageCost decimal.Decimal
	StockValue  decimal.Decimal // Balance × AverageCost
}

// MovementRows arma el kárdex en orden cronológico (estable ante fechas iguales);
// los movimientos sin fecha se aplican al final.
// Solo las entradas con costo (IN, o ajuste positivo con UnitCost) recalculan el promedio.
func MovementRows(movements []entity.StockMovement) []MovementRow {
	sorted := make([]entity.StockMovement, len(movements))
	copy(sorted, movements)
	sort.SliceStable(sorted, func(i, j int) bool { return entity.DatedBefore(sorted[i].Date, sorted[j].Date) })

	rows := make([]MovementRow, 0, len(sorted))
	balance, avg := decimal.Zero, decimal.Zero
	for _, m := range sorted {
		typ := strings.ToUpper(m.Type)
		qty := signedQuantity(typ, m.Quantity)

		if qty.IsPositive() && (typ == entity.MovementTypeIN || (typ == entity.MovementTypeADJUSTMENT && m.UnitCost.IsPositive())) {
			avg = WeightedAverageCost(balance, avg, qty, m.UnitCost)
		}
		balance = balance.Add(qty)

		rows = append(rows, MovementRow{
			MovementID:  m.ID,
			Date:        m.Date,
			Type:        typ,
			WarehouseID: m.WarehouseID,
			Reference:   m.Reference,
			Quantity:    qty,
			UnitCost:    m.UnitCost,
			Balance:     balance,
			AverageCost: avg,
			StockValue:  balance.Mul(avg),
		})
	}
	return rows
}

// signedQuantity normaliza el signo: las salidas siempre restan aunque el origen
// las envíe en positivo; las entradas siempre suman.
func signedQuantity(typ string, qty decimal.Decimal) decimal.Decimal {
	switch typ {
	case entity.MovementTypeOUT:
		return qty.Abs().Neg()
	case entity.MovementTypeIN:
		return qty.Abs()
	default:
		return qty
	}
}
