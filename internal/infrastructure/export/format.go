// Package export serializa las tablas de reporte de analítica en XLSX, CSV y PDF.
package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-analytics/internal/application/analytics"
)

const dateLayout = "2006-01-02"

// plainText representación neutra (sin separador de miles) para CSV.
// Una fecha cero queda vacía.
func plainText(v any, kind analytics.ColumnKind) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	case decimal.Decimal:
		if kind == analytics.KindMoney {
			return t.StringFixed(2)
		}
		return t.String()
	default:
		return ""
	}
}
