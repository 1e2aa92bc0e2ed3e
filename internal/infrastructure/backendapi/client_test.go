package backendapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/internal/infrastructure/backendapi"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

const testToken = "tok-123"

func newClient(srv *httptest.Server) *backendapi.Client {
	return backendapi.NewClient(backendapi.Config{
		BaseURL: srv.URL + "/",
		Token:   testToken,
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
}

const salePage1 = `{
  "data": [
    {"id": "si-1", "product_id": "p1", "quantity": 2, "unit_price": "30.00",
     "sale": {"id": "s-1", "sale_date": "2024-01-15", "total_amount": "90",
              "customer": {"full_name": "Ana Pérez"},
              "items": [
                {"id": "si-1", "product_id": "p1", "quantity": 2, "unit_price": 30},
                {"id": "si-2", "product_id": "p2", "quantity": 1, "unit_price": 90}
              ]}}
  ],
  "meta": {"current_page": 1, "per_page": 1, "last_page": 2, "total": 2}
}`

const salePage2 = `{
  "data": [
    {"id": "si-3", "quantity": "4", "price": "$ 1,000.50", "customer_name": "Luis", "date": "2024-02-01 10:00:00"}
  ],
  "meta": {"current_page": 2, "per_page": 1, "last_page": 2, "total": 2}
}`

func TestPageSaleItems_RecorridoCompletoYNormalizacion(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/products/p1/sale-items", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, salePage1)
		default:
			fmt.Fprint(w, salePage2)
		}
	}))
	defer srv.Close()

	c := newClient(srv)
	items, err := paginate.CollectAll(context.Background(), paginate.ForProduct("p1", c.PageSaleItems), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, calls)

	first := items[0]
	assert.Equal(t, "si-1", first.ID)
	assert.Equal(t, int64(2), first.Quantity)
	assert.True(t, decimal.NewFromInt(30).Equal(first.UnitPrice))
	require.NotNil(t, first.Order)
	assert.Equal(t, "s-1", first.Order.ID)
	assert.Equal(t, "Ana Pérez", first.Order.CounterpartyName)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), first.Order.Date)
	require.NotNil(t, first.Order.TotalAmount)
	assert.True(t, decimal.NewFromInt(90).Equal(*first.Order.TotalAmount))
	assert.True(t, first.Order.LinesVisible())
	assert.Len(t, first.Order.Lines, 2)

	second := items[1]
	assert.Equal(t, "p1", second.ProductID, "sin product_id se usa el solicitado")
	assert.Equal(t, int64(4), second.Quantity)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(second.UnitPrice))
	require.NotNil(t, second.Order)
	assert.Equal(t, "Luis", second.Order.CounterpartyName)
	assert.False(t, second.Order.LinesVisible())
	assert.Nil(t, second.Order.TotalAmount)
}

func TestPagePurchaseItems_SinCabeceraNiMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1/purchase-items", r.URL.Path)
		fmt.Fprint(w, `{"data": [
			{"id": "pi-1", "quantity": 10, "unit_cost": 5},
			{"id": "pi-2", "quantity": 2, "unit_price": 7,
			 "purchase": {"id": "po-1", "tax_percent": "19", "supplier": {"company_name": "Proveedor SAS"}}}
		]}`)
	}))
	defer srv.Close()

	page, err := newClient(srv).PagePurchaseItems(context.Background(), "p1", 1, 50)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, 1, page.Meta.LastPage, "sin meta se asume página única")

	assert.Nil(t, page.Data[0].Order)
	assert.True(t, decimal.NewFromInt(5).Equal(page.Data[0].UnitPrice))

	o := page.Data[1].Order
	require.NotNil(t, o)
	assert.Equal(t, "Proveedor SAS", o.CounterpartyName)
	require.NotNil(t, o.TaxPercent)
	assert.True(t, decimal.NewFromInt(19).Equal(*o.TaxPercent))
	assert.Nil(t, o.DiscountPercent)
}

func TestPageMovements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1/stock-movements", r.URL.Path)
		fmt.Fprint(w, `{"data": [{"id": "m1", "type": "in", "quantity": "3", "unit_cost": "2.5",
			"warehouse": {"id": "w1"}, "created_at": "2024-03-01T08:00:00Z"}],
			"meta": {"current_page": 1, "per_page": 200, "last_page": 1, "total": 1}}`)
	}))
	defer srv.Close()

	page, err := newClient(srv).PageMovements(context.Background(), "p1", 1, 200)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	m := page.Data[0]
	assert.Equal(t, entity.MovementTypeIN, m.Type)
	assert.Equal(t, "w1", m.WarehouseID)
	assert.Equal(t, "p1", m.ProductID)
	assert.True(t, decimal.RequireFromString("2.5").Equal(m.UnitCost))
}

func TestCollectAll_ErrorDelBackendDescartaTodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 2 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, salePage1)
	}))
	defer srv.Close()

	c := newClient(srv)
	items, err := paginate.CollectAll(context.Background(), paginate.ForProduct("p1", c.PageSaleItems), 1)
	assert.Nil(t, items)

	var fe *paginate.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Page)
	var se *backendapi.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestGetStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/p1":
			fmt.Fprint(w, `{"data": {"id": "p1", "sku": "SKU-1", "name": "Café", "current_stock": "12.5", "days_in_stock": 40}}`)
		case "/products/p2":
			fmt.Fprint(w, `{"id": "p2", "stock": 0, "days_in_stock": null}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	c := newClient(srv)

	st, err := c.GetStock(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "SKU-1", st.SKU)
	assert.True(t, decimal.RequireFromString("12.5").Equal(st.CurrentStock))
	require.NotNil(t, st.DaysInStock)
	assert.Equal(t, 40, *st.DaysInStock)

	st, err = c.GetStock(context.Background(), "p2")
	require.NoError(t, err)
	assert.Nil(t, st.DaysInStock)
	assert.True(t, st.CurrentStock.IsZero())

	st, err = c.GetStock(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, st)
}

func TestGetStock_ContextoCancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no debe llegar ninguna petición")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newClient(srv).GetStock(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)
}
