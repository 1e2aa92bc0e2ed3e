// Package normalize tolera las distintas formas en que el backend entrega un mismo dato
// (nombre del cliente en varios objetos anidados, fechas en distintos campos, números como
// texto). Se usa solo en el borde de entrada; el motor de métricas recibe datos ya normalizados.
package normalize

import (
	"strconv"
	"strings"
)

// Rutas candidatas para el nombre de la contraparte y la fecha de la orden, en orden de prioridad.
var (
	CustomerNamePaths = []string{
		"sale.customer.name",
		"sale.customer.full_name",
		"sale.customer_name",
		"customer.name",
		"customer.full_name",
		"customer_name",
		"sale.client.name",
	}
	SupplierNamePaths = []string{
		"purchase.supplier.name",
		"purchase.supplier.company_name",
		"purchase.supplier_name",
		"supplier.name",
		"supplier.company_name",
		"supplier_name",
		"purchase.vendor.name",
	}
	SaleDatePaths     = []string{"sale.sale_date", "sale.date", "sale.created_at", "sale_date", "date", "created_at"}
	PurchaseDatePaths = []string{"purchase.purchase_date", "purchase.date", "purchase.created_at", "purchase_date", "date", "created_at"}
)

// ResolveFirstPresent devuelve el valor de la primera ruta presente y no vacía.
// Las rutas usan punto como separador; un segmento numérico indexa un arreglo ("lines.0.id").
func ResolveFirstPresent(record map[string]any, paths ...string) (any, bool) {
	for _, p := range paths {
		v, ok := Lookup(record, p)
		if ok && present(v) {
			return v, true
		}
	}
	return nil, false
}

// Lookup recorre una ruta con puntos dentro de un registro JSON decodificado.
func Lookup(record map[string]any, path string) (any, bool) {
	var cur any = record
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Object devuelve el objeto anidado en la ruta, o nil.
func Object(record map[string]any, paths ...string) map[string]any {
	v, ok := ResolveFirstPresent(record, paths...)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	default:
		return true
	}
}
