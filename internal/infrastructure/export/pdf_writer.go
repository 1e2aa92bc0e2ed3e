package export

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/inventario-analytics/internal/application/analytics"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ analytics.ReportWriter = (*PDFWriter)(nil)

// PDFWriter reporte imprimible A4 con Maroto v2. Con más de 6 columnas la página va
// en horizontal. Los montos se formatean según el locale configurado (es-CO: $ 1.234,50).
type PDFWriter struct {
	printer *message.Printer
	now     func() time.Time
}

// NewPDFWriter construye el escritor. Un locale inválido cae a español.
func NewPDFWriter(locale string) *PDFWriter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &PDFWriter{printer: message.NewPrinter(tag), now: time.Now}
}

func (w *PDFWriter) ContentType() string { return "application/pdf" }
func (w *PDFWriter) Extension() string   { return "pdf" }

// Write genera el PDF y devuelve sus bytes.
func (w *PDFWriter) Write(_ context.Context, table analytics.Table) ([]byte, error) {
	widths := columnWidths(table.Columns)
	grid := 0
	for _, cw := range widths {
		grid += cw
	}
	if grid == 0 {
		grid = 12
	}

	orient := orientation.Vertical
	if len(table.Columns) > 6 {
		orient = orientation.Horizontal
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orient).
		WithMaxGridSize(grid).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(table.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(w.headerRow(table, grid))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(table.Columns, widths))
	for _, r := range table.Rows {
		m.AddRows(w.dataRow(table.Columns, widths, r, false))
	}
	if len(table.Totals) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(w.dataRow(table.Columns, widths, table.Totals, true))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título y subtítulo (izq), fecha de generación (der).
func (w *PDFWriter) headerRow(table analytics.Table, grid int) core.Row {
	right := grid / 3
	if right < 1 {
		right = 1
	}
	left := grid - right
	if left < 1 {
		left = 1
	}
	return row.New(16).Add(
		col.New(left).Add(
			text.New(table.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(table.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(right).Add(
			text.New("Generado: "+w.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: encabezados en blanco sobre fondo azul.
func tableHeaderRow(cols []analytics.Column, widths []int) core.Row {
	cells := make([]core.Col, len(cols))
	for i, c := range cols {
		cells[i] = col.New(widths[i]).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: alignFor(c.Kind),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (w *PDFWriter) dataRow(cols []analytics.Column, widths []int, values []any, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	cells := make([]core.Col, len(cols))
	for i, c := range cols {
		var v any
		if i < len(values) {
			v = values[i]
		}
		cells[i] = col.New(widths[i]).Add(text.New(w.display(v, c.Kind), props.Text{
			Style: style, Size: 7.5, Align: alignFor(c.Kind), Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cells...)
}

// display formatea según locale; las fechas en dd/mm/aaaa como el resto de documentos.
func (w *PDFWriter) display(v any, kind analytics.ColumnKind) string {
	switch t := v.(type) {
	case decimal.Decimal:
		if kind == analytics.KindMoney {
			return w.printer.Sprintf("$ %v", number.Decimal(t.InexactFloat64(), number.Scale(2)))
		}
		return w.printer.Sprint(number.Decimal(t.InexactFloat64()))
	case int64:
		return w.printer.Sprint(number.Decimal(t))
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Format("02/01/2006")
	default:
		return plainText(v, kind)
	}
}

// columnWidths reparte la grilla: texto y fecha ocupan el doble que los números.
func columnWidths(cols []analytics.Column) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		switch c.Kind {
		case analytics.KindText, analytics.KindDate:
			out[i] = 2
		default:
			out[i] = 1
		}
	}
	return out
}

func alignFor(kind analytics.ColumnKind) align.Type {
	switch kind {
	case analytics.KindMoney, analytics.KindDecimal, analytics.KindInteger:
		return align.Right
	default:
		return align.Left
	}
}
