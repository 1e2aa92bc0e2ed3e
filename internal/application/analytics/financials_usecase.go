package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-analytics/internal/application/dto"
	"github.com/jhoicas/inventario-analytics/internal/domain"
	engine "github.com/jhoicas/inventario-analytics/internal/domain/analytics"
	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/internal/domain/repository"
)

// DefaultBatchConcurrency productos procesados en paralelo en una consulta por lote.
const DefaultBatchConcurrency = 4

// Options parámetros de ejecución de los casos de uso de analítica.
type Options struct {
	PageSize         int
	BatchConcurrency int
}

// FinancialsUseCase calcula las métricas financieras de uno o varios productos
// recolectando el historial completo de ventas y compras desde la fuente de datos.
type FinancialsUseCase struct {
	src         collector
	concurrency int
	log         zerolog.Logger
}

// NewFinancialsUseCase construye el caso de uso.
func NewFinancialsUseCase(
	sales repository.SalesRepository,
	purchases repository.PurchaseRepository,
	products repository.ProductRepository,
	opts Options,
	log zerolog.Logger,
) *FinancialsUseCase {
	concurrency := opts.BatchConcurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	return &FinancialsUseCase{
		src: collector{
			sales:     sales,
			purchases: purchases,
			products:  products,
			pageSize:  opts.PageSize,
			log:       log,
		},
		concurrency: concurrency,
		log:         log,
	}
}

// productData entradas completas de un producto.
type productData struct {
	stock     entity.ProductStock
	sales     []entity.LineItem
	purchases []entity.LineItem
}

func (uc *FinancialsUseCase) load(ctx context.Context, productID string) (*productData, error) {
	stock, err := uc.src.stock(ctx, productID)
	if err != nil {
		return nil, err
	}
	sales, purchases, err := uc.src.both(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &productData{stock: *stock, sales: sales, purchases: purchases}, nil
}

// GetProductFinancials métricas de un producto. Producto inexistente → domain.ErrNotFound;
// falla de cualquier página → domain.ErrUpstream, sin resultado parcial.
func (uc *FinancialsUseCase) GetProductFinancials(ctx context.Context, productID string) (*dto.ProductFinancialsDTO, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	start := time.Now()

	data, err := uc.load(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetProductFinancials: %w", err)
	}
	fin := engine.ComputeProductFinancials(
		productID, data.sales, data.purchases, data.stock.CurrentStock, data.stock.DaysInStock,
	)

	uc.log.Info().Str("product_id", productID).
		Int("sale_items", len(data.sales)).Int("purchase_items", len(data.purchases)).
		Dur("elapsed", time.Since(start)).Msg("métricas calculadas")

	out := toFinancialsDTO(fin, data)
	return &out, nil
}

// GetBatchFinancials métricas de varios productos. Los IDs repetidos se consultan una vez
// y la respuesta respeta el orden de la primera aparición. Un solo producto que falle
// aborta el lote completo.
func (uc *FinancialsUseCase) GetBatchFinancials(ctx context.Context, req dto.BatchFinancialsRequest) (*dto.BatchFinancialsResponse, error) {
	ids := uniqueIDs(req.ProductIDs)
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	start := time.Now()

	loaded := make([]*productData, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			data, err := uc.load(gctx, id)
			if err != nil {
				return err
			}
			loaded[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics.GetBatchFinancials: %w", err)
	}

	var sales, purchases []entity.LineItem
	stock := make(map[string]entity.ProductStock, len(ids))
	for i, id := range ids {
		sales = append(sales, loaded[i].sales...)
		purchases = append(purchases, loaded[i].purchases...)
		stock[id] = loaded[i].stock
	}
	results := engine.ComputeBatch(sales, purchases, stock)

	resp := &dto.BatchFinancialsResponse{Items: make([]dto.ProductFinancialsDTO, 0, len(ids))}
	for i, id := range ids {
		resp.Items = append(resp.Items, toFinancialsDTO(results[id], loaded[i]))
	}

	uc.log.Info().Int("products", len(ids)).Dur("elapsed", time.Since(start)).Msg("métricas por lote calculadas")
	return resp, nil
}

func uniqueIDs(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// toFinancialsDTO redondea montos a 2 decimales; solo aquí se redondea.
func toFinancialsDTO(fin entity.ProductFinancials, data *productData) dto.ProductFinancialsDTO {
	return dto.ProductFinancialsDTO{
		ProductID:             fin.ProductID,
		SKU:                   data.stock.SKU,
		ProductName:           data.stock.Name,
		TotalRevenue:          fin.TotalRevenue.Round(2),
		TotalCost:             fin.TotalCost.Round(2),
		Profit:                fin.Profit.Round(2),
		ProfitMarginPercent:   fin.ProfitMarginPercent.Round(2),
		UnitsSold:             fin.UnitsSold,
		UnitsPurchased:        fin.UnitsPurchased,
		SalesVelocityPerMonth: fin.SalesVelocityPerMonth.Round(2),
		TurnoverRate:          fin.TurnoverRate.Round(2),
		AverageUnitCost:       fin.AverageUnitCost.Round(2),
		CurrentStock:          data.stock.CurrentStock,
		DaysInStock:           fin.DaysInStock,
		SaleItemCount:         len(data.sales),
		PurchaseItemCount:     len(data.purchases),
	}
}
