package analytics_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	app "github.com/jhoicas/inventario-analytics/internal/application/analytics"
	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

// memorySource fuente paginada en memoria que implementa todos los puertos de lectura.
type memorySource struct {
	mu        sync.Mutex
	stocks    map[string]entity.ProductStock
	sales     map[string][]entity.LineItem
	purchases map[string][]entity.LineItem
	movements map[string][]entity.StockMovement
	failSales map[string]int // productID → página que falla
	calls     int
}

func newMemorySource() *memorySource {
	return &memorySource{
		stocks:    map[string]entity.ProductStock{},
		sales:     map[string][]entity.LineItem{},
		purchases: map[string][]entity.LineItem{},
		movements: map[string][]entity.StockMovement{},
		failSales: map[string]int{},
	}
}

var errBackend = errors.New("backend caído")

func pageOf[T any](all []T, page, perPage int) paginate.Page[T] {
	from := paginate.Offset(page, perPage)
	if from > len(all) {
		from = len(all)
	}
	to := from + perPage
	if to > len(all) {
		to = len(all)
	}
	return paginate.Page[T]{Data: all[from:to], Meta: paginate.NewMeta(page, perPage, len(all))}
}

func (m *memorySource) track() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *memorySource) fetchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memorySource) GetStock(ctx context.Context, productID string) (*entity.ProductStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st, ok := m.stocks[productID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (m *memorySource) PageSaleItems(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.LineItem], error) {
	m.track()
	if fail, ok := m.failSales[productID]; ok && fail == page {
		return paginate.Page[entity.LineItem]{}, errBackend
	}
	return pageOf(m.sales[productID], page, perPage), nil
}

func (m *memorySource) PagePurchaseItems(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.LineItem], error) {
	m.track()
	return pageOf(m.purchases[productID], page, perPage), nil
}

func (m *memorySource) PageMovements(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.StockMovement], error) {
	m.track()
	return pageOf(m.movements[productID], page, perPage), nil
}

// recordingWriter guarda la última tabla recibida.
type recordingWriter struct {
	got app.Table
}

func (w *recordingWriter) Write(_ context.Context, t app.Table) ([]byte, error) {
	w.got = t
	return []byte("ok"), nil
}

func (w *recordingWriter) ContentType() string { return "text/plain" }
func (w *recordingWriter) Extension() string   { return "txt" }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func saleItem(id, productID string, qty int64, price string, date time.Time) entity.LineItem {
	return entity.LineItem{
		ID: id, ProductID: productID, Quantity: qty, UnitPrice: dec(price),
		Order: &entity.Order{ID: "o-" + id, Date: date, CounterpartyName: "Cliente " + id},
	}
}
