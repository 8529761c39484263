package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	// MaxCategories categorías devueltas en el desglose; el resto se omite.
	MaxCategories = 4
	// DefaultTopProducts productos en el ranking cuando no se indica límite.
	DefaultTopProducts = 5
	// StockoutThreshold cantidad a partir de la cual (<=) una fila de stock está agotada.
	StockoutThreshold = 0
	// LowStockThreshold cantidad máxima (<=) considerada stock bajo.
	LowStockThreshold = 10

	// NoProductSold nombre del producto de relleno cuando no hubo ventas.
	NoProductSold = "Aucun produit vendu"
)

// Totals agregados del período completo.
type Totals struct {
	RevenueTTC decimal.Decimal
	RevenueHT  decimal.Decimal
	Tax        decimal.Decimal
	Cost       decimal.Decimal
	Orders     int64
	Clients    int64
}

// StockCounts conteos de stock, independientes del período.
type StockCounts struct {
	Stockout int64
	LowStock int64
	Products int64
}

// CategoryRevenue ingreso de una categoría en el período.
type CategoryRevenue struct {
	Name       string
	RevenueTTC decimal.Decimal
	RevenueHT  decimal.Decimal
}

// ProductSales ventas de un producto en el período.
type ProductSales struct {
	ProductID  string
	Name       string
	Quantity   decimal.Decimal
	RevenueTTC decimal.Decimal
	RevenueHT  decimal.Decimal
}

// KPISet indicadores del período. Mismo formato para overview y report.
// Stockout es un conteo de filas de stock, nunca un porcentaje.
type KPISet struct {
	Revenue      int64 `json:"revenue"`
	RevenueTTC   int64 `json:"revenue_ttc"`
	RevenueHT    int64 `json:"revenue_ht"`
	TotalTax     int64 `json:"total_tax"`
	Profit       int64 `json:"profit"`
	Orders       int64 `json:"orders"`
	Clients      int64 `json:"clients"`
	Stockout     int64 `json:"stockout"`
	LowStock     int64 `json:"low_stock"`
	ProfitMargin int64 `json:"profitMargin"`
}

// CategoryShare participación de una categoría (Value en %, entero).
type CategoryShare struct {
	Name      string  `json:"name"`
	Value     int     `json:"value"`
	Revenue   float64 `json:"revenue"`
	RevenueHT float64 `json:"revenue_ht"`
}

// TopProduct fila del ranking de productos. Sales es la cantidad vendida.
type TopProduct struct {
	Name      string  `json:"name"`
	Sales     int64   `json:"sales"`
	Revenue   float64 `json:"revenue"`
	RevenueHT float64 `json:"revenue_ht"`
}

// PeriodData payload de un período para los tableros.
type PeriodData struct {
	Sales       []Point         `json:"sales"`
	KPIs        KPISet          `json:"kpis"`
	Categories  []CategoryShare `json:"categories"`
	TopProducts []TopProduct    `json:"topProducts"`
}

// Aggregates hechos crudos de un período tal como los devuelve la capa de consultas.
type Aggregates struct {
	Totals     Totals
	Daily      []DailySales
	Stock      StockCounts
	Categories []CategoryRevenue
	Products   []ProductSales
}

// BuildKPIs deriva el KPISet. profitMargin es 0 cuando revenue_ht redondeado es 0.
func BuildKPIs(t Totals, s StockCounts) KPISet {
	profit := t.RevenueHT.Sub(t.Cost)
	ht := roundInt(t.RevenueHT)
	var margin int64
	if ht != 0 {
		margin = roundInt(profit.Div(t.RevenueHT).Mul(hundred))
	}
	ttc := roundInt(t.RevenueTTC)
	return KPISet{
		Revenue:      ttc,
		RevenueTTC:   ttc,
		RevenueHT:    ht,
		TotalTax:     roundInt(t.Tax),
		Profit:       roundInt(profit),
		Orders:       t.Orders,
		Clients:      t.Clients,
		Stockout:     s.Stockout,
		LowStock:     s.LowStock,
		ProfitMargin: margin,
	}
}

// CategoryShares ordena por ingreso, conserva las MaxCategories primeras y reparte
// porcentajes enteros contra la suma de las devueltas (resto mayor). La suma es 100
// cuando hay ingreso y 0 cuando no.
func CategoryShares(rows []CategoryRevenue) []CategoryShare {
	sorted := make([]CategoryRevenue, 0, len(rows))
	for _, r := range rows {
		if r.RevenueTTC.IsNegative() {
			r.RevenueTTC = decimal.Zero
		}
		sorted = append(sorted, r)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RevenueTTC.GreaterThan(sorted[j].RevenueTTC)
	})
	if len(sorted) > MaxCategories {
		sorted = sorted[:MaxCategories]
	}

	total := decimal.Zero
	for _, r := range sorted {
		total = total.Add(r.RevenueTTC)
	}

	out := make([]CategoryShare, len(sorted))
	for i, r := range sorted {
		out[i] = CategoryShare{
			Name:      r.Name,
			Revenue:   money(r.RevenueTTC),
			RevenueHT: money(r.RevenueHT),
		}
	}
	if total.IsZero() {
		return out
	}

	type frac struct {
		idx int
		rem decimal.Decimal
	}
	fracs := make([]frac, len(sorted))
	assigned := 0
	for i, r := range sorted {
		exact := r.RevenueTTC.Mul(hundred).Div(total)
		floor := exact.Floor()
		out[i].Value = int(floor.IntPart())
		assigned += out[i].Value
		fracs[i] = frac{idx: i, rem: exact.Sub(floor)}
	}
	sort.SliceStable(fracs, func(i, j int) bool { return fracs[i].rem.GreaterThan(fracs[j].rem) })
	for k := 0; assigned < 100 && k < len(fracs); k++ {
		if fracs[k].rem.IsZero() {
			break
		}
		out[fracs[k].idx].Value++
		assigned++
	}
	return out
}

// TopProducts ordena por ingreso y corta en limit. Sin filas devuelve el producto de relleno.
func TopProducts(rows []ProductSales, limit int) []TopProduct {
	if limit <= 0 {
		limit = DefaultTopProducts
	}
	if len(rows) == 0 {
		return []TopProduct{{Name: NoProductSold}}
	}
	sorted := append([]ProductSales(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RevenueTTC.GreaterThan(sorted[j].RevenueTTC)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]TopProduct, len(sorted))
	for i, r := range sorted {
		out[i] = TopProduct{
			Name:      r.Name,
			Sales:     clampZero(roundInt(r.Quantity)),
			Revenue:   money(r.RevenueTTC),
			RevenueHT: money(r.RevenueHT),
		}
	}
	return out
}

// BuildPeriodData arma el payload completo del período a partir de los agregados.
func BuildPeriodData(buckets []Bucket, agg Aggregates, topLimit int) PeriodData {
	return PeriodData{
		Sales:       Normalize(buckets, agg.Daily),
		KPIs:        BuildKPIs(agg.Totals, agg.Stock),
		Categories:  CategoryShares(agg.Categories),
		TopProducts: TopProducts(agg.Products, topLimit),
	}
}

// EmptyPeriodData payload en cero con la serie completa; se usa cuando un período falla.
func EmptyPeriodData(buckets []Bucket) PeriodData {
	return BuildPeriodData(buckets, Aggregates{}, 0)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
