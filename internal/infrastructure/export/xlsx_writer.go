package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-analytics/internal/application/analytics"
)

var _ analytics.ReportWriter = (*XLSXWriter)(nil)

const (
	xlsxTitleRow  = 1
	xlsxHeaderRow = 4
)

// XLSXWriter una hoja con título, subtítulo, encabezados, datos y totales.
// Los montos se escriben como número con formato #,##0.00 para que sigan siendo sumables.
type XLSXWriter struct{}

// NewXLSXWriter construye el escritor.
func NewXLSXWriter() *XLSXWriter { return &XLSXWriter{} }

func (w *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (w *XLSXWriter) Extension() string { return "xlsx" }

// Write genera el libro en memoria.
func (w *XLSXWriter) Write(_ context.Context, table analytics.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(table.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheet, "A1", table.Title); err != nil {
		return nil, fmt.Errorf("xlsx: título: %w", err)
	}
	_ = f.SetCellStyle(sheet, "A1", "A1", styles.title)
	if table.Subtitle != "" {
		_ = f.SetCellValue(sheet, "A2", table.Subtitle)
	}

	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c.Header
	}
	if err := setRow(f, sheet, xlsxHeaderRow, header); err != nil {
		return nil, err
	}
	if len(table.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), xlsxHeaderRow)
		_ = f.SetCellStyle(sheet, "A4", last, styles.header)
	}

	rowNo := xlsxHeaderRow + 1
	for _, r := range table.Rows {
		if err := setRow(f, sheet, rowNo, cellValues(table.Columns, r)); err != nil {
			return nil, err
		}
		rowNo++
	}
	lastData := rowNo - 1
	if len(table.Totals) > 0 {
		if err := setRow(f, sheet, rowNo, cellValues(table.Columns, table.Totals)); err != nil {
			return nil, err
		}
		first, _ := excelize.CoordinatesToCellName(1, rowNo)
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), rowNo)
		_ = f.SetCellStyle(sheet, first, last, styles.total)
		lastData = rowNo
	}

	// Formato numérico por columna (incluye la fila de totales).
	if lastData > xlsxHeaderRow {
		for i, c := range table.Columns {
			style, ok := styles.byKind[c.Kind]
			if !ok {
				continue
			}
			top, _ := excelize.CoordinatesToCellName(i+1, xlsxHeaderRow+1)
			bottom, _ := excelize.CoordinatesToCellName(i+1, lastData)
			_ = f.SetCellStyle(sheet, top, bottom, style)
		}
	}
	if n := len(table.Columns); n > 0 {
		lastCol, _ := excelize.ColumnNumberToName(n)
		_ = f.SetColWidth(sheet, "A", lastCol, 18)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

type xlsxStyles struct {
	title, header, total int
	byKind               map[analytics.ColumnKind]int
}

func newXLSXStyles(f *excelize.File) (*xlsxStyles, error) {
	var s xlsxStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "00467F"}}); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	}); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if s.total, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	dateFmt := "yyyy-mm-dd"
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	s.byKind = map[analytics.ColumnKind]int{
		analytics.KindMoney: money,
		analytics.KindDate:  date,
	}
	return &s, nil
}

func setRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", rowNo, err)
	}
	return nil
}

// cellValues convierte decimales a float64 y deja vacías las fechas cero.
func cellValues(cols []analytics.Column, values []any) []any {
	out := make([]any, len(cols))
	for i := range cols {
		if i >= len(values) {
			break
		}
		switch t := values[i].(type) {
		case decimal.Decimal:
			out[i] = t.InexactFloat64()
		case time.Time:
			if t.IsZero() {
				out[i] = ""
			} else {
				out[i] = t
			}
		default:
			out[i] = t
		}
	}
	return out
}

// sheetName respeta las restricciones de Excel (31 caracteres, sin []:*?/\).
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return "Reporte"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
