// Package pdf genera el reporte de ventas de un período en PDF (Maroto v2).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + bodega    │  Período + rango + fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: CA TTC / CA HT / TVA / Bénéfice / Commandes / ...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Libellé | Ventes | Commandes | Bénéfice             │
//	│  CATEGORÍAS (top 4) | TOP PRODUCTOS                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: generado por / fecha                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/analytics"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

var _ analytics.Renderer = (*ReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 225, Green: 234, Blue: 242}
)

var periodTitles = map[report.Period]string{
	report.PeriodWeek:    "7 derniers jours",
	report.PeriodMonth:   "30 derniers jours",
	report.PeriodQuarter: "Trimestre",
	report.PeriodYear:    "12 derniers mois",
	report.PeriodCustom:  "Période personnalisée",
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReportRenderer implementa analytics.Renderer en PDF.
type ReportRenderer struct{}

// NewReportRenderer construye el generador.
func NewReportRenderer() *ReportRenderer { return &ReportRenderer{} }

func (g *ReportRenderer) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *ReportRenderer) Render(doc analytics.ReportDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport des ventes", true).
		WithAuthor(doc.Company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRows(doc.Data.KPIs, doc.Currency)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Évolution des ventes"))
	m.AddRows(tableHeader([]string{"Période", "Ventes", "Commandes", "Bénéfice"}, []int{3, 3, 3, 3}))
	for _, p := range doc.Data.Sales {
		m.AddRows(tableRow([]string{p.Label, formatInt(p.Sales), formatInt(p.Orders), formatInt(p.Profit)}, []int{3, 3, 3, 3}))
	}

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle("Répartition par catégorie"))
	m.AddRows(tableHeader([]string{"Catégorie", "Part", "CA TTC", "CA HT"}, []int{4, 2, 3, 3}))
	if len(doc.Data.Categories) == 0 {
		m.AddRows(tableRow([]string{"Aucune vente", "", "", ""}, []int{4, 2, 3, 3}))
	}
	for _, c := range doc.Data.Categories {
		m.AddRows(tableRow([]string{c.Name, strconv.Itoa(c.Value) + " %", formatFloat(c.Revenue), formatFloat(c.RevenueHT)}, []int{4, 2, 3, 3}))
	}

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle("Meilleurs produits"))
	m.AddRows(tableHeader([]string{"Produit", "Qté", "CA TTC", "CA HT"}, []int{5, 1, 3, 3}))
	for _, p := range doc.Data.TopProducts {
		m.AddRows(tableRow([]string{p.Name, formatInt(p.Sales), formatFloat(p.Revenue), formatFloat(p.RevenueHT)}, []int{5, 1, 3, 3}))
	}

	m.AddRows(row.New(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc analytics.ReportDocument) core.Row {
	rng := fmt.Sprintf("Du %s au %s", doc.Range.Start.Format("02/01/2006"), doc.Range.End.Format("02/01/2006"))
	return row.New(18).Add(
		col.New(7).Add(
			text.New(doc.Company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(doc.Warehouse, "Tous les entrepôts"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RAPPORT DES VENTES", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(periodTitles[doc.Period], string(doc.Period)), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6}),
			text.New(rng, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func kpiRows(k report.KPISet, currency string) []core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center}),
		)
	}
	cur := nonEmpty(currency, "")
	return []core.Row{
		row.New(13).Add(
			cell("CA TTC", formatInt(k.RevenueTTC)+" "+cur),
			cell("CA HT", formatInt(k.RevenueHT)+" "+cur),
			cell("TVA", formatInt(k.TotalTax)+" "+cur),
			cell("Bénéfice", formatInt(k.Profit)+" "+cur),
		),
		row.New(13).Add(
			cell("Marge", formatInt(k.ProfitMargin)+" %"),
			cell("Commandes", formatInt(k.Orders)),
			cell("Clients", formatInt(k.Clients)),
			cell("Ruptures / Stock bas", formatInt(k.Stockout)+" / "+formatInt(k.LowStock)),
		),
	}
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableRow(values []string, sizes []int) core.Row {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols[i] = col.New(sizes[i]).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(6).Add(cols...)
}

func footerRow(doc analytics.ReportDocument) core.Row {
	by := ""
	if doc.GeneratedBy != "" {
		by = " par " + doc.GeneratedBy
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Généré le %s%s", doc.GeneratedAt.Format("02/01/2006 15:04"), by), props.Text{
			Size: 7, Color: colorGray, Top: 2, Align: align.Right,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatInt separa miles con espacio: 1234567 → "1 234 567".
func formatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	size := len(s)
	if size <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, size+size/3)
	for i, c := range []byte(s) {
		if i > 0 && (size-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

// formatFloat importe con dos decimales y coma decimal: 1234.5 → "1 234,50".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	whole, frac := s[:len(s)-3], s[len(s)-2:]
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return s
	}
	if n == 0 && f < 0 {
		return "-0," + frac
	}
	return formatInt(n) + "," + frac
}
