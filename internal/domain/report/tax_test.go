package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

func TestAmountHT(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		rate   decimal.NullDecimal
		want   string
	}{
		{"tasa nula usa 18%", "100", decimal.NullDecimal{}, "84.75"},
		{"tasa explícita", "110", decimal.NewNullDecimal(decimal.NewFromInt(10)), "100"},
		{"tasa cero", "50", decimal.NewNullDecimal(decimal.Zero), "50"},
		{"tasa negativa usa 18%", "118", decimal.NewNullDecimal(decimal.NewFromInt(-5)), "100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := report.AmountHT(dec(tc.amount), tc.rate)
			assert.True(t, got.Equal(dec(tc.want)), "got %s", got)
		})
	}
}

func TestSplitTax_SumaTTC(t *testing.T) {
	ht, tax := report.SplitTax(dec("99.99"), decimal.NullDecimal{})
	assert.True(t, ht.Add(tax).Equal(dec("99.99")))
	assert.True(t, tax.IsPositive())
}
