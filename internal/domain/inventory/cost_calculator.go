package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una entrada de inventario.
//
//	nuevoCosto = (saldo × costoActual + cantEntrada × costoEntrada) / (saldo + cantEntrada)
//
// Un saldo negativo (ventas registradas antes de la compra) no pondera: el costo pasa a ser
// el de la entrada. Si el divisor no es positivo devuelve 0.
func WeightedAverageCost(balance, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	sum := balance.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := balance.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
