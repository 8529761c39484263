package report

import "github.com/shopspring/decimal"

// DefaultTaxRate tasa (en %) aplicada cuando la venta no tiene tasa explícita.
var DefaultTaxRate = decimal.NewFromInt(18)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// EffectiveTaxRate devuelve la tasa de la venta o DefaultTaxRate si es nula o negativa.
func EffectiveTaxRate(rate decimal.NullDecimal) decimal.Decimal {
	if !rate.Valid || rate.Decimal.IsNegative() {
		return DefaultTaxRate
	}
	return rate.Decimal
}

// AmountHT calcula el monto sin impuestos a partir de un monto TTC:
// amount / (1 + rate/100), redondeado a 2 decimales.
func AmountHT(amountTTC decimal.Decimal, rate decimal.NullDecimal) decimal.Decimal {
	divisor := one.Add(EffectiveTaxRate(rate).Div(hundred))
	return amountTTC.Div(divisor).Round(2)
}

// SplitTax separa un monto TTC en (HT, impuesto). HT + impuesto == TTC.
func SplitTax(amountTTC decimal.Decimal, rate decimal.NullDecimal) (ht, tax decimal.Decimal) {
	ht = AmountHT(amountTTC, rate)
	return ht, amountTTC.Sub(ht)
}
