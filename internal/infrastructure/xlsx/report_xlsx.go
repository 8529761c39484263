// Package xlsx genera el reporte de ventas de un período como libro Excel (excelize).
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/analytics"
)

var _ analytics.Renderer = (*ReportRenderer)(nil)

// Nombres de hojas.
const (
	SheetSummary    = "Synthèse"
	SheetSales      = "Ventes"
	SheetCategories = "Catégories"
	SheetProducts   = "Produits"
)

// ReportRenderer implementa analytics.Renderer en XLSX.
type ReportRenderer struct{}

func NewReportRenderer() *ReportRenderer { return &ReportRenderer{} }

func (g *ReportRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render arma un libro con una hoja por sección.
func (g *ReportRenderer) Render(doc analytics.ReportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// La hoja por defecto se renombra a Synthèse.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, s := range []string{SheetSales, SheetCategories, SheetProducts} {
		if _, err := f.NewSheet(s); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", s, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	w := &sheetWriter{f: f, bold: bold}

	k := doc.Data.KPIs
	warehouse := doc.Warehouse
	if warehouse == "" {
		warehouse = "Tous les entrepôts"
	}
	w.rows(SheetSummary, []string{"Indicateur", "Valeur"}, [][]any{
		{"Entreprise", doc.Company},
		{"Entrepôt", warehouse},
		{"Période", string(doc.Period)},
		{"Du", doc.Range.Start.Format("2006-01-02")},
		{"Au", doc.Range.End.Format("2006-01-02")},
		{"Devise", doc.Currency},
		{"CA TTC", k.RevenueTTC},
		{"CA HT", k.RevenueHT},
		{"TVA", k.TotalTax},
		{"Bénéfice", k.Profit},
		{"Marge (%)", k.ProfitMargin},
		{"Commandes", k.Orders},
		{"Clients", k.Clients},
		{"Ruptures", k.Stockout},
		{"Stock bas", k.LowStock},
		{"Généré le", doc.GeneratedAt.Format("2006-01-02 15:04")},
		{"Généré par", doc.GeneratedBy},
	})

	sales := make([][]any, 0, len(doc.Data.Sales))
	for _, p := range doc.Data.Sales {
		sales = append(sales, []any{p.Label, p.Sales, p.Orders, p.Profit})
	}
	w.rows(SheetSales, []string{"Période", "Ventes", "Commandes", "Bénéfice"}, sales)

	cats := make([][]any, 0, len(doc.Data.Categories))
	for _, c := range doc.Data.Categories {
		cats = append(cats, []any{c.Name, c.Value, c.Revenue, c.RevenueHT})
	}
	w.rows(SheetCategories, []string{"Catégorie", "Part (%)", "CA TTC", "CA HT"}, cats)

	prods := make([][]any, 0, len(doc.Data.TopProducts))
	for _, p := range doc.Data.TopProducts {
		prods = append(prods, []any{p.Name, p.Sales, p.Revenue, p.RevenueHT})
	}
	w.rows(SheetProducts, []string{"Produit", "Quantité", "CA TTC", "CA HT"}, prods)

	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter acumula el primer error para no repetir el chequeo por celda.
type sheetWriter struct {
	f    *excelize.File
	bold int
	err  error
}

func (w *sheetWriter) rows(sheet string, header []string, data [][]any) {
	if w.err != nil {
		return
	}
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := w.f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		w.err = fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, w.bold); err != nil {
		w.err = fmt.Errorf("xlsx: estilo %s: %w", sheet, err)
		return
	}
	for i, r := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := r
		if err := w.f.SetSheetRow(sheet, cell, &r); err != nil {
			w.err = fmt.Errorf("xlsx: fila %d de %s: %w", i+2, sheet, err)
			return
		}
	}
	endCol, _ := excelize.ColumnNumberToName(len(header))
	if err := w.f.SetColWidth(sheet, "A", endCol, 18); err != nil {
		w.err = fmt.Errorf("xlsx: ancho %s: %w", sheet, err)
	}
}
