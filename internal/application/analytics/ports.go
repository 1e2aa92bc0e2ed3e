package analytics

import "context"

// ColumnKind tipo de dato de una columna de reporte; cada escritor decide cómo representarlo.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
	KindMoney
	KindDecimal
	KindDate
)

// Column encabezado y tipo de una columna.
type Column struct {
	Header string
	Kind   ColumnKind
}

// Table reporte tabular independiente del formato de salida.
// Los valores de Rows son string, int64, decimal.Decimal o time.Time según Column.Kind.
type Table struct {
	Title    string
	Subtitle string
	Columns  []Column
	Rows     [][]any
	Totals   []any // fila de totales opcional, misma longitud que Columns
}

// ReportWriter serializa una tabla (XLSX, CSV, PDF).
type ReportWriter interface {
	Write(ctx context.Context, table Table) ([]byte, error)
	ContentType() string
	Extension() string
}
