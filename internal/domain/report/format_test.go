package report_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

func TestBuildKPIs_SinIngresoMargenCero(t *testing.T) {
	k := report.BuildKPIs(report.Totals{Cost: dec("30")}, report.StockCounts{})
	assert.Zero(t, k.ProfitMargin)
	assert.Zero(t, k.Revenue)

	// 0.4 se muestra como 0: el margen también.
	k = report.BuildKPIs(report.Totals{RevenueHT: dec("0.4"), RevenueTTC: dec("0.47")}, report.StockCounts{})
	assert.Zero(t, k.RevenueHT)
	assert.Zero(t, k.ProfitMargin)
}

func TestBuildKPIs(t *testing.T) {
	k := report.BuildKPIs(
		report.Totals{RevenueTTC: dec("118"), RevenueHT: dec("100"), Tax: dec("18"), Cost: dec("60"), Orders: 3, Clients: 2},
		report.StockCounts{Stockout: 1, LowStock: 4, Products: 20},
	)
	assert.Equal(t, report.KPISet{
		Revenue:      118,
		RevenueTTC:   118,
		RevenueHT:    100,
		TotalTax:     18,
		Profit:       40,
		Orders:       3,
		Clients:      2,
		Stockout:     1,
		LowStock:     4,
		ProfitMargin: 40,
	}, k)
}

func TestCategoryShares_RestoMayor(t *testing.T) {
	shares := report.CategoryShares([]report.CategoryRevenue{
		{Name: "A", RevenueTTC: dec("1")},
		{Name: "B", RevenueTTC: dec("1")},
		{Name: "C", RevenueTTC: dec("1")},
	})
	require.Len(t, shares, 3)
	assert.Equal(t, 34, shares[0].Value)
	assert.Equal(t, 33, shares[1].Value)
	assert.Equal(t, 33, shares[2].Value)
}

func TestCategoryShares_SoloTop4Ordenadas(t *testing.T) {
	shares := report.CategoryShares([]report.CategoryRevenue{
		{Name: "poco", RevenueTTC: dec("5")},
		{Name: "mucho", RevenueTTC: dec("500")},
		{Name: "medio", RevenueTTC: dec("100")},
		{Name: "nada", RevenueTTC: dec("0")},
		{Name: "algo", RevenueTTC: dec("50")},
		{Name: "bastante", RevenueTTC: dec("200")},
	})
	require.Len(t, shares, report.MaxCategories)
	assert.Equal(t, "mucho", shares[0].Name)
	assert.Equal(t, "bastante", shares[1].Name)
	assert.Equal(t, "medio", shares[2].Name)
	assert.Equal(t, "algo", shares[3].Name)
}

func TestCategoryShares_PorcentajesAcotados(t *testing.T) {
	inputs := [][]string{
		{"1", "2", "3", "4"},
		{"0.01", "999.99"},
		{"7", "7", "7", "7", "7", "7"},
		{"33.33", "33.33", "33.34"},
		{"0", "0"},
	}
	for _, in := range inputs {
		rows := make([]report.CategoryRevenue, len(in))
		for i, v := range in {
			rows[i] = report.CategoryRevenue{Name: v, RevenueTTC: dec(v)}
		}
		sum := 0
		for _, s := range report.CategoryShares(rows) {
			assert.GreaterOrEqual(t, s.Value, 0)
			assert.LessOrEqual(t, s.Value, 100)
			sum += s.Value
		}
		assert.LessOrEqual(t, sum, 100, "%v", in)
	}
}

func TestCategoryShares_VacioEsListaVacia(t *testing.T) {
	b, err := json.Marshal(report.CategoryShares(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestTopProducts_SinVentasDevuelveRelleno(t *testing.T) {
	top := report.TopProducts(nil, 5)
	assert.Equal(t, []report.TopProduct{{Name: "Aucun produit vendu"}}, top)
}

func TestTopProducts_OrdenYLimite(t *testing.T) {
	rows := []report.ProductSales{
		{Name: "b", Quantity: dec("1"), RevenueTTC: dec("10")},
		{Name: "a", Quantity: dec("3"), RevenueTTC: dec("30")},
		{Name: "c", Quantity: dec("2"), RevenueTTC: dec("20")},
	}
	top := report.TopProducts(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Name)
	assert.Equal(t, int64(3), top[0].Sales)
	assert.Equal(t, "c", top[1].Name)
}

func TestTopProducts_HTConTasaPorDefecto(t *testing.T) {
	ht := report.AmountHT(dec("100"), decimal.NullDecimal{})
	top := report.TopProducts([]report.ProductSales{{Name: "x", Quantity: dec("1"), RevenueTTC: dec("100"), RevenueHT: ht}}, 5)
	assert.Equal(t, 84.75, top[0].RevenueHT)
	assert.Equal(t, 100.0, top[0].Revenue)
}

func TestEmptyPeriodData(t *testing.T) {
	buckets, err := report.BuildBuckets(report.PeriodWeek, today, nil, nil)
	require.NoError(t, err)

	data := report.EmptyPeriodData(buckets)
	b, err := json.Marshal(data)
	require.NoError(t, err)

	var got struct {
		Sales       []map[string]any `json:"sales"`
		KPIs        map[string]any   `json:"kpis"`
		Categories  []any            `json:"categories"`
		TopProducts []map[string]any `json:"topProducts"`
	}
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Len(t, got.Sales, 7)
	assert.NotNil(t, got.Categories)
	assert.Empty(t, got.Categories)
	for _, k := range []string{"revenue", "orders", "clients", "stockout", "profit"} {
		assert.EqualValues(t, 0, got.KPIs[k], k)
	}
	require.Len(t, got.TopProducts, 1)
	assert.Equal(t, "Aucun produit vendu", got.TopProducts[0]["name"])
	assert.EqualValues(t, 0, got.TopProducts[0]["sales"])
	assert.EqualValues(t, 0, got.TopProducts[0]["revenue"])
}
