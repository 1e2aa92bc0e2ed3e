package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-analytics/internal/domain/analytics"
	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
)

func TestSaleRows_OrdenYDesglose(t *testing.T) {
	late := &entity.Order{ID: "s2", Date: day(2024, time.May, 2), CounterpartyName: "Ana"}
	early := &entity.Order{
		ID:               "s1",
		Date:             day(2024, time.April, 1),
		CounterpartyName: "Luis",
		TotalAmount:      decPtr("110"),
		TaxPercent:       decPtr("10"),
		Lines:            []entity.OrderLine{{ID: "b", Quantity: 1, UnitPrice: dec("100")}},
	}
	items := []entity.LineItem{
		item("a", 2, "5", late),
		item("n", 1, "1", nil),
		item("b", 1, "100", early),
	}

	rows := analytics.SaleRows(items)
	require.Len(t, rows, 3)

	assert.Equal(t, "b", rows[0].ItemID)
	assert.Equal(t, "Luis", rows[0].Counterparty)
	assert.Equal(t, "s1", rows[0].OrderID)
	assertDecimal(t, "10", rows[0].TaxAmount)
	assertDecimal(t, "110", rows[0].LineTotal)

	assert.Equal(t, "a", rows[1].ItemID)
	assertDecimal(t, "0", rows[1].TaxAmount, "sin total autoritativo la línea es neta")
	assertDecimal(t, "10", rows[1].LineTotal)

	assert.Equal(t, "n", rows[2].ItemID, "las filas sin fecha van al final")
	assert.True(t, rows[2].Date.IsZero())
}

func TestRows_SumaCoincideConElMotor(t *testing.T) {
	po := &entity.Order{ID: "po1", TotalAmount: decPtr("100"), TaxPercent: decPtr("19")}
	po2 := &entity.Order{ID: "po2", TaxPercent: decPtr("19"), DiscountPercent: decPtr("3")}
	purchases := []entity.LineItem{
		item("a", 1, "1", po),
		item("b", 1, "1", po),
		item("c", 1, "1", po),
		item("d", 7, "3.33", po2),
	}
	total := decimal.Zero
	for _, r := range analytics.PurchaseRows(purchases) {
		total = total.Add(r.LineTotal)
	}
	assert.True(t, total.Equal(analytics.ComputeCost(purchases)), "filas %s vs motor %s", total, analytics.ComputeCost(purchases))
}

func TestPurchaseRows_SubtotalCeroRepartoEquitativo(t *testing.T) {
	po := &entity.Order{ID: "po1", TotalAmount: decPtr("30")}
	rows := analytics.PurchaseRows([]entity.LineItem{item("a", 0, "1", po), item("b", 3, "0", po)})
	require.Len(t, rows, 2)
	assertDecimal(t, "15", rows[0].LineTotal)
	assertDecimal(t, "15", rows[1].LineTotal)
}
