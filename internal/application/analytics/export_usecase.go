package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-analytics/internal/application/dto"
	"github.com/jhoicas/inventario-analytics/internal/domain"
	engine "github.com/jhoicas/inventario-analytics/internal/domain/analytics"
	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/internal/domain/inventory"
	"github.com/jhoicas/inventario-analytics/internal/domain/repository"
)

// ExportUseCase genera reportes descargables con el historial completo de un producto.
// Nunca exporta una sola página: recorre la fuente hasta el final o falla.
type ExportUseCase struct {
	src     collector
	writers map[string]ReportWriter
	log     zerolog.Logger
	now     func() time.Time
}

// NewExportUseCase construye el caso de uso. writers se indexa por formato (xlsx, csv, pdf).
func NewExportUseCase(
	sales repository.SalesRepository,
	purchases repository.PurchaseRepository,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	writers map[string]ReportWriter,
	opts Options,
	log zerolog.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		src: collector{
			sales:     sales,
			purchases: purchases,
			movements: movements,
			products:  products,
			pageSize:  opts.PageSize,
			log:       log,
		},
		writers: writers,
		log:     log,
		now:     time.Now,
	}
}

// Export arma la tabla del tipo solicitado y la serializa en el formato pedido.
func (uc *ExportUseCase) Export(ctx context.Context, productID string, req dto.ExportRequest) (*dto.ExportFile, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	req.Defaults()
	writer, ok := uc.writers[req.Format]
	if !ok {
		return nil, fmt.Errorf("analytics.Export: formato %q: %w", req.Format, domain.ErrInvalidInput)
	}

	exportID := uuid.NewString()
	start := time.Now()

	stock, err := uc.src.stock(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("analytics.Export: %w", err)
	}

	var table Table
	switch req.Kind {
	case dto.ExportKindSales:
		items, err := uc.src.saleItems(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("analytics.Export: %w", err)
		}
		table = orderRowsTable("Ventas", "Cliente", engine.SaleRows(items))
	case dto.ExportKindPurchases:
		items, err := uc.src.purchaseItems(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("analytics.Export: %w", err)
		}
		table = orderRowsTable("Compras", "Proveedor", engine.PurchaseRows(items))
	case dto.ExportKindMovements:
		movements, err := uc.src.stockMovements(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("analytics.Export: %w", err)
		}
		table = movementsTable(inventory.MovementRows(movements))
	case dto.ExportKindSummary:
		sales, purchases, err := uc.src.both(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("analytics.Export: %w", err)
		}
		fin := engine.ComputeProductFinancials(productID, sales, purchases, stock.CurrentStock, stock.DaysInStock)
		table = summaryTable(fin, *stock)
	default:
		return nil, fmt.Errorf("analytics.Export: tipo %q: %w", req.Kind, domain.ErrInvalidInput)
	}
	table.Subtitle = productLabel(*stock)

	content, err := writer.Write(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("analytics.Export: escribir %s: %w", req.Format, err)
	}

	uc.log.Info().Str("export_id", exportID).Str("product_id", productID).
		Str("kind", req.Kind).Str("format", req.Format).
		Int("rows", len(table.Rows)).Int("bytes", len(content)).
		Dur("elapsed", time.Since(start)).Msg("exportación generada")

	return &dto.ExportFile{
		Filename:    exportFilename(*stock, req.Kind, uc.now(), writer.Extension()),
		ContentType: writer.ContentType(),
		Content:     content,
	}, nil
}

func orderRowsTable(title, counterparty string, rows []engine.ReportRow) Table {
	t := Table{
		Title: title,
		Columns: []Column{
			{Header: "Fecha", Kind: KindDate},
			{Header: "Orden", Kind: KindText},
			{Header: "Ítem", Kind: KindText},
			{Header: counterparty, Kind: KindText},
			{Header: "Cantidad", Kind: KindInteger},
			{Header: "Precio unitario", Kind: KindMoney},
			{Header: "Subtotal", Kind: KindMoney},
			{Header: "Impuesto", Kind: KindMoney},
			{Header: "Descuento", Kind: KindMoney},
			{Header: "Total", Kind: KindMoney},
		},
		Rows: make([][]any, 0, len(rows)),
	}

	var qty int64
	subtotal, tax, discount, total := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Date, r.OrderID, r.ItemID, r.Counterparty, r.Quantity,
			r.UnitPrice, r.Subtotal, r.TaxAmount, r.DiscountAmount, r.LineTotal,
		})
		qty += r.Quantity
		subtotal = subtotal.Add(r.Subtotal)
		tax = tax.Add(r.TaxAmount)
		discount = discount.Add(r.DiscountAmount)
		total = total.Add(r.LineTotal)
	}
	t.Totals = []any{"TOTAL", "", "", "", qty, "", subtotal, tax, discount, total}
	return t
}

func movementsTable(rows []inventory.MovementRow) Table {
	t := Table{
		Title: "Kárdex",
		Columns: []Column{
			{Header: "Fecha", Kind: KindDate},
			{Header: "Tipo", Kind: KindText},
			{Header: "Bodega", Kind: KindText},
			{Header: "Referencia", Kind: KindText},
			{Header: "Cantidad", Kind: KindDecimal},
			{Header: "Costo unitario", Kind: KindMoney},
			{Header: "Saldo", Kind: KindDecimal},
			{Header: "Costo promedio", Kind: KindMoney},
			{Header: "Valor inventario", Kind: KindMoney},
		},
		Rows: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.Date, r.Type, r.WarehouseID, r.Reference, r.Quantity,
			r.UnitCost, r.Balance, r.AverageCost, r.StockValue,
		})
	}
	return t
}

func summaryTable(fin entity.ProductFinancials, stock entity.ProductStock) Table {
	days := "N/D"
	if fin.DaysInStock != nil {
		days = fmt.Sprintf("%d", *fin.DaysInStock)
	}
	return Table{
		Title: "Resumen financiero",
		Columns: []Column{
			{Header: "Métrica", Kind: KindText},
			{Header: "Valor", Kind: KindText},
		},
		Rows: [][]any{
			{"Ingresos", fin.TotalRevenue.StringFixed(2)},
			{"Costo", fin.TotalCost.StringFixed(2)},
			{"Utilidad", fin.Profit.StringFixed(2)},
			{"Margen (%)", fin.ProfitMarginPercent.StringFixed(2)},
			{"Unidades vendidas", fmt.Sprintf("%d", fin.UnitsSold)},
			{"Unidades compradas", fmt.Sprintf("%d", fin.UnitsPurchased)},
			{"Velocidad (unid/mes)", fin.SalesVelocityPerMonth.StringFixed(2)},
			{"Rotación", fin.TurnoverRate.StringFixed(2)},
			{"Costo unitario promedio", fin.AverageUnitCost.StringFixed(2)},
			{"Stock actual", stock.CurrentStock.String()},
			{"Días en inventario", days},
		},
	}
}

func productLabel(stock entity.ProductStock) string {
	switch {
	case stock.SKU != "" && stock.Name != "":
		return stock.SKU + " - " + stock.Name
	case stock.Name != "":
		return stock.Name
	default:
		return stock.ProductID
	}
}

// exportFilename p. ej. "SKU-001_sales_20260115.xlsx".
func exportFilename(stock entity.ProductStock, kind string, at time.Time, ext string) string {
	base := stock.SKU
	if base == "" {
		base = stock.ProductID
	}
	return fmt.Sprintf("%s_%s_%s.%s", sanitizeFilename(base), kind, at.Format("20060102"), ext)
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
