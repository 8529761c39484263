package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/analytics"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

func TestFormatInt(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1 000",
		1234567:  "1 234 567",
		-25000:   "-25 000",
		-100:     "-100",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatInt(in))
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "84,75", formatFloat(84.75))
	assert.Equal(t, "1 234,50", formatFloat(1234.5))
	assert.Equal(t, "0,00", formatFloat(0))
}

func TestRender_GeneraPDF(t *testing.T) {
	buckets, err := report.BuildBuckets(report.PeriodWeek, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)

	out, err := NewReportRenderer().Render(analytics.ReportDocument{
		Company:     "Boutique Awa",
		Currency:    "XOF",
		GeneratedBy: "Awa",
		Period:      report.PeriodWeek,
		Range:       report.Span(buckets),
		GeneratedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Data:        report.EmptyPeriodData(buckets),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
