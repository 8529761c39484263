package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DailySales agregado de ventas de un día (fila de la capa de consultas).
type DailySales struct {
	Date       time.Time
	RevenueTTC decimal.Decimal
	RevenueHT  decimal.Decimal
	Cost       decimal.Decimal
	Orders     int64
}

// Point punto de la serie del gráfico de ventas.
type Point struct {
	Label  string `json:"label"`
	Sales  int64  `json:"sales"`
	Orders int64  `json:"orders"`
	Profit int64  `json:"profit"`
}

type bucketAcc struct {
	sales  decimal.Decimal
	ht     decimal.Decimal
	cost   decimal.Decimal
	orders int64
}

// Normalize reparte las filas diarias en los buckets y devuelve un punto por bucket,
// en el mismo orden. Los buckets sin ventas quedan en cero; las filas fuera del rango
// se ignoran. El beneficio por bucket nunca es negativo.
func Normalize(buckets []Bucket, rows []DailySales) []Point {
	acc := make([]bucketAcc, len(buckets))
	for _, r := range rows {
		i := findBucket(buckets, r.Date)
		if i < 0 {
			continue
		}
		acc[i].sales = acc[i].sales.Add(r.RevenueTTC)
		acc[i].ht = acc[i].ht.Add(r.RevenueHT)
		acc[i].cost = acc[i].cost.Add(r.Cost)
		acc[i].orders += r.Orders
	}

	points := make([]Point, len(buckets))
	for i, b := range buckets {
		points[i] = Point{
			Label:  b.Label,
			Sales:  roundInt(acc[i].sales),
			Orders: acc[i].orders,
			Profit: clampZero(roundInt(acc[i].ht.Sub(acc[i].cost))),
		}
	}
	return points
}

// findBucket índice del bucket que contiene el día de t, o -1.
func findBucket(buckets []Bucket, t time.Time) int {
	if len(buckets) == 0 {
		return -1
	}
	loc := buckets[0].Start.Location()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	i := sort.Search(len(buckets), func(i int) bool { return !buckets[i].End.Before(d) })
	if i < len(buckets) && buckets[i].Contains(d) {
		return i
	}
	return -1
}

func roundInt(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func clampZero(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
