package entity

import "time"

// DatedBefore orden cronológico para reportes: las fechas válidas ascienden y las
// fechas cero (sin fecha interpretable) van al final.
func DatedBefore(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return !a.IsZero() && b.IsZero()
	}
	return a.Before(b)
}
