package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/jhoicas/inventario-analytics/internal/application/analytics"
	"github.com/jhoicas/inventario-analytics/internal/application/dto"
	"github.com/jhoicas/inventario-analytics/internal/domain"
	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

var jan10 = time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

// seedProduct: 5 ventas (2 × 10) el mismo día y 2 compras (5 × 6), stock 5.
func seedProduct(src *memorySource, productID string) {
	days := 12
	src.stocks[productID] = entity.ProductStock{
		ProductID: productID, SKU: "SKU-" + productID, Name: "Producto " + productID,
		CurrentStock: dec("5"), DaysInStock: &days,
	}
	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		src.sales[productID] = append(src.sales[productID], saleItem(productID+id, productID, 2, "10", jan10))
	}
	src.purchases[productID] = []entity.LineItem{
		{ID: productID + "c1", ProductID: productID, Quantity: 5, UnitPrice: dec("6")},
		{ID: productID + "c2", ProductID: productID, Quantity: 5, UnitPrice: dec("6")},
	}
}

func newFinancials(src *memorySource, pageSize int) *app.FinancialsUseCase {
	return app.NewFinancialsUseCase(src, src, src, app.Options{PageSize: pageSize, BatchConcurrency: 2}, zerolog.Nop())
}

func TestGetProductFinancials_RecorreTodasLasPaginas(t *testing.T) {
	src := newMemorySource()
	seedProduct(src, "p1")
	uc := newFinancials(src, 2)

	got, err := uc.GetProductFinancials(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 5, got.SaleItemCount, "las 3 páginas de ventas deben recolectarse")
	assert.Equal(t, 2, got.PurchaseItemCount)
	assert.True(t, dec("100").Equal(got.TotalRevenue))
	assert.True(t, dec("60").Equal(got.TotalCost))
	assert.True(t, dec("40").Equal(got.Profit))
	assert.True(t, dec("40").Equal(got.ProfitMarginPercent))
	assert.Equal(t, int64(10), got.UnitsSold)
	assert.Equal(t, int64(10), got.UnitsPurchased)
	assert.True(t, dec("10").Equal(got.SalesVelocityPerMonth))
	assert.True(t, dec("2").Equal(got.TurnoverRate))
	assert.True(t, dec("6").Equal(got.AverageUnitCost))
	assert.Equal(t, "SKU-p1", got.SKU)
	require.NotNil(t, got.DaysInStock)
	assert.Equal(t, 12, *got.DaysInStock)
}

func TestGetProductFinancials_ProductoInexistente(t *testing.T) {
	uc := newFinancials(newMemorySource(), 2)

	_, err := uc.GetProductFinancials(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetProductFinancials_IDVacio(t *testing.T) {
	uc := newFinancials(newMemorySource(), 2)

	_, err := uc.GetProductFinancials(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetProductFinancials_FallaDePaginaAbortaSinParcial(t *testing.T) {
	src := newMemorySource()
	seedProduct(src, "p1")
	src.failSales["p1"] = 2
	uc := newFinancials(src, 2)

	got, err := uc.GetProductFinancials(context.Background(), "p1")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, errBackend)

	var fe *paginate.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Page)
}

func TestGetProductFinancials_ContextoCanceladoNoConsulta(t *testing.T) {
	src := newMemorySource()
	seedProduct(src, "p1")
	uc := newFinancials(src, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.GetProductFinancials(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
	assert.Zero(t, src.fetchCalls())
}

func TestGetBatchFinancials_OrdenYDuplicados(t *testing.T) {
	src := newMemorySource()
	seedProduct(src, "p1")
	seedProduct(src, "p2")
	src.sales["p2"] = src.sales["p2"][:1]
	uc := newFinancials(src, 2)

	resp, err := uc.GetBatchFinancials(context.Background(), dto.BatchFinancialsRequest{
		ProductIDs: []string{"p2", "p1", "p2"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	assert.Equal(t, "p2", resp.Items[0].ProductID)
	assert.True(t, dec("20").Equal(resp.Items[0].TotalRevenue))
	assert.Equal(t, "p1", resp.Items[1].ProductID)
	assert.True(t, dec("100").Equal(resp.Items[1].TotalRevenue))
}

func TestGetBatchFinancials_UnProductoFallaAbortaElLote(t *testing.T) {
	src := newMemorySource()
	seedProduct(src, "p1")
	seedProduct(src, "p2")
	src.failSales["p2"] = 1
	uc := newFinancials(src, 2)

	resp, err := uc.GetBatchFinancials(context.Background(), dto.BatchFinancialsRequest{
		ProductIDs: []string{"p1", "p2"},
	})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGetBatchFinancials_SinIDs(t *testing.T) {
	uc := newFinancials(newMemorySource(), 2)

	_, err := uc.GetBatchFinancials(context.Background(), dto.BatchFinancialsRequest{ProductIDs: []string{" "}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
