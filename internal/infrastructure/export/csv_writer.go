package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/inventario-analytics/internal/application/analytics"
)

var _ analytics.ReportWriter = (*CSVWriter)(nil)

// CSVWriter encabezados, filas y fila de totales; separador coma, montos con 2 decimales.
type CSVWriter struct {
	// Comma separador de campos; ',' por defecto.
	Comma rune
}

// NewCSVWriter construye el escritor con separador coma.
func NewCSVWriter() *CSVWriter { return &CSVWriter{Comma: ','} }

func (w *CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }
func (w *CSVWriter) Extension() string   { return "csv" }

// Write serializa la tabla completa.
func (w *CSVWriter) Write(_ context.Context, table analytics.Table) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if w.Comma != 0 {
		cw.Comma = w.Comma
	}

	header := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("csv: encabezado: %w", err)
	}
	for _, r := range table.Rows {
		if err := cw.Write(w.record(table.Columns, r)); err != nil {
			return nil, fmt.Errorf("csv: fila: %w", err)
		}
	}
	if len(table.Totals) > 0 {
		if err := cw.Write(w.record(table.Columns, table.Totals)); err != nil {
			return nil, fmt.Errorf("csv: totales: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *CSVWriter) record(cols []analytics.Column, values []any) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		if i < len(values) {
			out[i] = plainText(values[i], c.Kind)
		}
	}
	return out
}
