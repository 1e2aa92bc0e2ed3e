package dto

// Tipos de exportación.
const (
	ExportKindSales     = "sales"
	ExportKindPurchases = "purchases"
	ExportKindMovements = "movements"
	ExportKindSummary   = "summary"
)

// Formatos de exportación.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
	ExportFormatPDF  = "pdf"
)

// ExportRequest parámetros de GET /api/products/:id/export.
type ExportRequest struct {
	Kind   string `query:"kind" validate:"omitempty,oneof=sales purchases movements summary"`
	Format string `query:"format" validate:"omitempty,oneof=xlsx csv pdf"`
}

// Defaults aplica valores por defecto si Kind/Format están vacíos.
func (r *ExportRequest) Defaults() {
	if r.Kind == "" {
		r.Kind = ExportKindSales
	}
	if r.Format == "" {
		r.Format = ExportFormatXLSX
	}
}

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
