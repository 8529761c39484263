package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/analytics"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

func TestRender_LibroConHojas(t *testing.T) {
	buckets, err := report.BuildBuckets(report.PeriodWeek, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)
	data := report.EmptyPeriodData(buckets)
	data.KPIs.RevenueTTC = 11800
	data.Categories = []report.CategoryShare{{Name: "Boissons", Value: 100, Revenue: 118, RevenueHT: 100}}
	data.TopProducts = []report.TopProduct{{Name: "Eau 1L", Sales: 3, Revenue: 118, RevenueHT: 100}}

	out, err := NewReportRenderer().Render(analytics.ReportDocument{
		Company:     "Boutique Awa",
		Currency:    "XOF",
		Period:      report.PeriodWeek,
		Range:       report.Span(buckets),
		GeneratedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Data:        data,
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetSales, SheetCategories, SheetProducts}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Boutique Awa", v)

	v, err = f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Tous les entrepôts", v)

	rows, err := f.GetRows(SheetSales)
	require.NoError(t, err)
	assert.Len(t, rows, len(buckets)+1)

	v, err = f.GetCellValue(SheetProducts, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Eau 1L", v)
}

func TestContentType(t *testing.T) {
	assert.Contains(t, NewReportRenderer().ContentType(), "spreadsheetml")
}
