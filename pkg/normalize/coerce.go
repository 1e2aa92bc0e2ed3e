package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// String convierte un valor JSON a texto ("" si es nil).
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return decimal.NewFromFloat(t).String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Decimal convierte un valor JSON a decimal. Lo que no se pueda interpretar vale 0.
// Acepta textos con separador de miles y prefijos de moneda ("$ 1,250.50", "COP 900").
func Decimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return t
	case json.Number:
		return parseDecimal(t.String())
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(t)
	case float32:
		return Decimal(float64(t))
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case string:
		return parseDecimal(t)
	default:
		return decimal.Zero
	}
}

// OptionalDecimal devuelve nil si el valor no existe (nil o texto vacío); si existe se
// convierte con Decimal (inválido → 0).
func OptionalDecimal(v any) *decimal.Decimal {
	if !present(v) {
		return nil
	}
	d := Decimal(v)
	return &d
}

// Int convierte a entero truncando decimales; inválido → 0.
func Int(v any) int64 {
	return Decimal(v).IntPart()
}

// Time interpreta fechas en los formatos habituales del backend; inválida → tiempo cero.
func Time(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseDecimal(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	// Números JSON y texto numérico limpio, incluida notación exponencial.
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.TrimLeftFunc(s, isCurrencyRune)
	s = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(s)
	if s == "" || strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if neg {
		return d.Neg()
	}
	return d
}

// isCurrencyRune prefijo de moneda: símbolos ($, €) y códigos ISO en mayúsculas (COP, US$).
func isCurrencyRune(r rune) bool {
	return unicode.Is(unicode.Sc, r) || unicode.IsUpper(r) || unicode.IsSpace(r)
}
