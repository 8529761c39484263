package report_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

// viernes 15 de marzo de 2024
var today = time.Date(2024, time.March, 15, 16, 45, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func labels(buckets []report.Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Label
	}
	return out
}

func TestBuildBuckets_LongitudFijaPorPeriodo(t *testing.T) {
	cases := []struct {
		period report.Period
		want   int
	}{
		{report.PeriodWeek, 7},
		{report.PeriodMonth, 30},
		{report.PeriodQuarter, 3},
		{report.PeriodYear, 12},
	}
	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			buckets, err := report.BuildBuckets(tc.period, today, nil, nil)
			require.NoError(t, err)
			assert.Len(t, buckets, tc.want)
			assert.Equal(t, date(2024, time.March, 15), buckets[len(buckets)-1].End, "el último bucket termina hoy")
		})
	}
}

func TestBuildBuckets_Week(t *testing.T) {
	buckets, err := report.BuildBuckets(report.PeriodWeek, today, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sam.", "Dim.", "Lun.", "Mar.", "Mer.", "Jeu.", "Ven."}, labels(buckets))
	assert.Equal(t, date(2024, time.March, 9), buckets[0].Start)
	for _, b := range buckets {
		assert.Equal(t, b.Start, b.End, "buckets diarios")
	}
}

func TestBuildBuckets_Month(t *testing.T) {
	buckets, err := report.BuildBuckets(report.PeriodMonth, today, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "15/2", buckets[0].Label)
	assert.Equal(t, "29/2", buckets[14].Label)
	assert.Equal(t, "15/3", buckets[29].Label)
}

func TestBuildBuckets_Quarter(t *testing.T) {
	buckets, err := report.BuildBuckets(report.PeriodQuarter, today, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Janv.", "Févr.", "Mars"}, labels(buckets))
	assert.Equal(t, date(2024, time.January, 1), buckets[0].Start)
	assert.Equal(t, date(2024, time.January, 31), buckets[0].End)
	assert.Equal(t, date(2024, time.February, 29), buckets[1].End)
	assert.Equal(t, date(2024, time.March, 1), buckets[2].Start)
	assert.Equal(t, date(2024, time.March, 15), buckets[2].End)
}

func TestBuildBuckets_YearCruzaAnio(t *testing.T) {
	buckets, err := report.BuildBuckets(report.PeriodYear, today, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Avr.", buckets[0].Label)
	assert.Equal(t, date(2023, time.April, 1), buckets[0].Start)
	assert.Equal(t, "Déc.", buckets[8].Label)
	assert.Equal(t, "Mars", buckets[11].Label)
}

func TestBuildBuckets_Custom(t *testing.T) {
	cases := []struct {
		name      string
		start     time.Time
		end       time.Time
		want      int
		lastLabel string
	}{
		{"mismo día", date(2024, 1, 10), date(2024, 1, 10), 1, "10/1"},
		{"30 días es diario", date(2024, 1, 1), date(2024, 1, 31), 31, "31/1"},
		{"31 días pasa a semanas", date(2024, 1, 1), date(2024, 2, 1), 5, "S5"},
		{"60 días", date(2024, 1, 1), date(2024, 3, 1), 9, "S9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.start, tc.end
			buckets, err := report.BuildBuckets(report.PeriodCustom, today, &start, &end)
			require.NoError(t, err)

			require.Len(t, buckets, tc.want)
			assert.Equal(t, tc.lastLabel, buckets[len(buckets)-1].Label)
			assert.Equal(t, tc.start, buckets[0].Start)
			assert.Equal(t, tc.end, buckets[len(buckets)-1].End)
			for i := 1; i < len(buckets); i++ {
				assert.Equal(t, buckets[i-1].End.AddDate(0, 0, 1), buckets[i].Start, "buckets contiguos")
			}
		})
	}
}

func TestBuildBuckets_CustomUltimaSemanaSeExtiende(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 2, 5) // 35 días
	buckets, err := report.BuildBuckets(report.PeriodCustom, today, &start, &end)
	require.NoError(t, err)

	require.Len(t, buckets, 5)
	assert.Equal(t, date(2024, 1, 29), buckets[4].Start)
	assert.Equal(t, date(2024, 2, 5), buckets[4].End)
}

func TestBuildBuckets_CustomSinFechasUsaWeek(t *testing.T) {
	start := date(2024, 1, 1)
	buckets, err := report.BuildBuckets(report.PeriodCustom, today, &start, nil)
	require.NoError(t, err)
	assert.Len(t, buckets, 7)
	assert.Equal(t, "Ven.", buckets[6].Label)
}

func TestBuildBuckets_CustomFinAntesQueInicio(t *testing.T) {
	start, end := date(2024, 2, 1), date(2024, 1, 1)
	_, err := report.BuildBuckets(report.PeriodCustom, today, &start, &end)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParsePeriod(t *testing.T) {
	p, err := report.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, report.PeriodWeek, p)

	p, err = report.ParsePeriod("quarter")
	require.NoError(t, err)
	assert.Equal(t, report.PeriodQuarter, p)

	_, err = report.ParsePeriod("decade")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseDate(t *testing.T) {
	d, err := report.ParseDate("", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = report.ParseDate("2024-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), *d)

	_, err = report.ParseDate("29/02/2024", time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDaysBetween_CambioDeHorario(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	a := time.Date(2024, time.March, 30, 0, 0, 0, 0, paris)
	b := time.Date(2024, time.April, 1, 0, 0, 0, 0, paris)
	assert.Equal(t, 2, report.DaysBetween(a, b))
}

func TestSpan(t *testing.T) {
	assert.Equal(t, report.Range{}, report.Span(nil))

	buckets, err := report.BuildBuckets(report.PeriodQuarter, today, nil, nil)
	require.NoError(t, err)
	r := report.Span(buckets)
	assert.Equal(t, date(2024, 1, 1), r.Start)
	assert.Equal(t, date(2024, 3, 15), r.End)
}
