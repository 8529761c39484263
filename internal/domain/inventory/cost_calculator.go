// Package inventory servicios de dominio del inventario.
package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una entrada de mercancía:
// ((stock × costo) + (entrada × costoEntrada)) / (stock + entrada), redondeado a 4 decimales.
// Si el stock resultante no es positivo devuelve el costo de la entrada.
func WeightedAverageCost(stock, cost, inQty, inCost decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	total := stock.Add(inQty)
	if !total.IsPositive() {
		return inCost
	}
	num := stock.Mul(cost).Add(inQty.Mul(inCost))
	return num.Div(total).Round(4)
}
