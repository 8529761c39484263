// Package report contiene la lógica pura de los tableros de ventas: cálculo de
// buckets por período, normalización de series para gráficos y formateo de KPIs,
// categorías y productos. No conoce la base de datos ni HTTP.
package report

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
)

// Period selector de rango de los tableros.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodCustom  Period = "custom"
)

// AllPeriods variantes calculadas por el overview, en orden de respuesta.
var AllPeriods = []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear, PeriodCustom}

const (
	weekDays        = 7
	monthDays       = 30
	quarterMonths   = 3
	yearMonths      = 12
	maxDailyCustom  = 30 // hasta 30 días de diferencia se agrupa por día
	customWeekWidth = 7
)

// DateLayout formato de fechas aceptado en los query params.
const DateLayout = "2006-01-02"

// ParsePeriod valida el nombre del período. Vacío equivale a week.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodWeek, nil
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear, PeriodCustom:
		return Period(s), nil
	}
	return "", domain.NewValidationError("período desconocido '"+s+"'", "period")
}

// ParseDate interpreta una fecha YYYY-MM-DD en loc. Vacío devuelve nil sin error.
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida '"+s+"', formato YYYY-MM-DD", "date")
	}
	return &t, nil
}

// Bucket intervalo de días [Start, End] (ambos inclusive, a medianoche) con su etiqueta.
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

// Contains indica si el día d cae dentro del bucket.
func (b Bucket) Contains(d time.Time) bool {
	return !d.Before(b.Start) && !d.After(b.End)
}

// Range rango total consultado para un conjunto de buckets.
type Range struct {
	Start time.Time
	End   time.Time
}

// Span devuelve el rango cubierto por buckets (ordenados y contiguos).
func Span(buckets []Bucket) Range {
	if len(buckets) == 0 {
		return Range{}
	}
	return Range{Start: buckets[0].Start, End: buckets[len(buckets)-1].End}
}

// BuildBuckets construye la secuencia ordenada de buckets del período, terminando hoy.
// Para custom, start y end son obligatorios; si falta alguno se usa la agrupación de week.
func BuildBuckets(p Period, today time.Time, start, end *time.Time) ([]Bucket, error) {
	today = truncateDay(today)
	switch p {
	case PeriodWeek:
		return dailyBuckets(today.AddDate(0, 0, -(weekDays-1)), weekDays, weekdayLabel), nil
	case PeriodMonth:
		return dailyBuckets(today.AddDate(0, 0, -(monthDays-1)), monthDays, dayMonthLabel), nil
	case PeriodQuarter:
		return monthlyBuckets(today, quarterMonths), nil
	case PeriodYear:
		return monthlyBuckets(today, yearMonths), nil
	case PeriodCustom:
		if start == nil || end == nil {
			return BuildBuckets(PeriodWeek, today, nil, nil)
		}
		return customBuckets(truncateDay(*start), truncateDay(*end))
	}
	return nil, domain.NewValidationError(fmt.Sprintf("período desconocido '%s'", p), "period")
}

func dailyBuckets(first time.Time, n int, label func(time.Time) string) []Bucket {
	buckets := make([]Bucket, 0, n)
	for i := 0; i < n; i++ {
		d := first.AddDate(0, 0, i)
		buckets = append(buckets, Bucket{Label: label(d), Start: d, End: d})
	}
	return buckets
}

// monthlyBuckets: mes actual más los n-1 anteriores. El mes en curso termina hoy.
func monthlyBuckets(today time.Time, n int) []Bucket {
	buckets := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		first := time.Date(today.Year(), today.Month()-time.Month(i), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, -1)
		if last.After(today) {
			last = today
		}
		buckets = append(buckets, Bucket{Label: monthLabel(first), Start: first, End: last})
	}
	return buckets
}

// customBuckets: por día si la diferencia es <= 30 días; si no, ventanas de 7 días S1..Sn.
// La última ventana se extiende hasta end.
func customBuckets(start, end time.Time) ([]Bucket, error) {
	diff := DaysBetween(start, end)
	if diff < 0 {
		return nil, domain.NewValidationError("startDate posterior a endDate", "startDate", "endDate")
	}
	if diff <= maxDailyCustom {
		return dailyBuckets(start, diff+1, dayMonthLabel), nil
	}

	n := (diff + customWeekWidth - 1) / customWeekWidth
	buckets := make([]Bucket, 0, n)
	for i := 0; i < n; i++ {
		from := start.AddDate(0, 0, i*customWeekWidth)
		to := from.AddDate(0, 0, customWeekWidth-1)
		if i == n-1 || to.After(end) {
			to = end
		}
		buckets = append(buckets, Bucket{Label: fmt.Sprintf("S%d", i+1), Start: from, End: to})
	}
	return buckets, nil
}

// DaysBetween número de días de calendario entre a y b (b - a), inmune a cambios de horario.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ── Etiquetas (locale fr) ─────────────────────────────────────────────────────

var (
	weekdayAbbr = [...]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}
	monthAbbr   = [...]string{
		"janv.", "févr.", "mars", "avr.", "mai", "juin",
		"juil.", "août", "sept.", "oct.", "nov.", "déc.",
	}
)

// titleFr capitaliza la abreviatura. cases.Caser no es seguro entre goroutines,
// por eso se crea uno por llamada.
func titleFr(s string) string {
	return cases.Title(language.French).String(s)
}

func weekdayLabel(d time.Time) string {
	return titleFr(weekdayAbbr[d.Weekday()])
}

func dayMonthLabel(d time.Time) string {
	return fmt.Sprintf("%d/%d", d.Day(), int(d.Month()))
}

func monthLabel(d time.Time) string {
	return titleFr(monthAbbr[d.Month()-1])
}
