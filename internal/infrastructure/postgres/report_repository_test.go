package postgres

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

// ── Querier de prueba: registra la consulta y los argumentos ──────────────────

var errFakeDB = errors.New("fake db")

type call struct {
	sql  string
	args []any
}

type recordingQuerier struct {
	calls []call
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, call{sql, args})
	return pgconn.CommandTag{}, errFakeDB
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, call{sql, args})
	return nil, errFakeDB
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, call{sql, args})
	return errRow{}
}

type errRow struct{}

func (errRow) Scan(...any) error { return errFakeDB }

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestReportQueries_SiempreFiltranPorEmpresa(t *testing.T) {
	companyFilter := regexp.MustCompile(`\b(s|p)\.company_id = \$1\b`)
	for name, q := range reportQueries {
		assert.Regexp(t, companyFilter, q, "%s debe filtrar por company_id = $1", name)
		assert.NotContains(t, q, "%", "%s no debe construirse con formato", name)
	}
}

func TestReportQueries_JoinDeProductosMismaEmpresa(t *testing.T) {
	for name, q := range reportQueries {
		if strings.Contains(q, "JOIN products p ON p.id = li.product_id") {
			assert.Contains(t, q, "p.company_id = s", "%s", name)
		}
	}
}

func TestReportQueries_ExcluyenCanceladas(t *testing.T) {
	for _, name := range []string{"PeriodTotals", "DailySales", "TopProducts", "CategoryRevenue", "CostOfGoods"} {
		assert.Contains(t, reportQueries[name], "s.status <> 'cancelled'", name)
	}
}

func TestReportQueries_NumeroDeParametros(t *testing.T) {
	placeholder := regexp.MustCompile(`\$(\d+)`)
	maxParam := func(q string) int {
		max := 0
		for _, m := range placeholder.FindAllStringSubmatch(q, -1) {
			n := 0
			for _, ch := range m[1] {
				n = n*10 + int(ch-'0')
			}
			if n > max {
				max = n
			}
		}
		return max
	}
	want := map[string]int{
		"PeriodTotals": 6, "DailySales": 6, "TopProducts": 7, "CategoryRevenue": 8,
		"CostOfGoods": 5, "StockCounts": 4, "RecentSales": 4, "StockAlerts": 4,
	}
	for name, n := range want {
		assert.Equal(t, n, maxParam(reportQueries[name]), name)
	}
}

func TestReportRepo_ArgumentosDeAlcance(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewReportRepository(q)
	rng := report.Range{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	_, err := repo.PeriodTotals(context.Background(), repository.ReportScope{CompanyID: "c1"}, rng)
	require.ErrorIs(t, err, errFakeDB)

	require.Len(t, q.calls, 1)
	args := q.calls[0].args
	require.Len(t, args, 6)
	assert.Equal(t, "c1", args[0])
	assert.Nil(t, args[1], "sin bodega no filtra")
	assert.Nil(t, args[2], "sin usuario no filtra")
	assert.Equal(t, "2024-03-01", args[3])
	assert.Equal(t, "2024-03-15", args[4])
	assert.Equal(t, report.DefaultTaxRate, args[5])
}

func TestReportRepo_FiltroDeBodegaYUsuario(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewReportRepository(q)
	scope := repository.ReportScope{CompanyID: "c1", WarehouseID: "w1", UserID: "u1"}

	_, err := repo.TopProducts(context.Background(), scope, report.Range{}, 0)
	require.ErrorIs(t, err, errFakeDB)
	_, err = repo.CostOfGoods(context.Background(), scope, report.Range{})
	require.ErrorIs(t, err, errFakeDB)
	_, err = repo.CategoryRevenue(context.Background(), scope, report.Range{}, 0)
	require.ErrorIs(t, err, errFakeDB)

	require.Len(t, q.calls, 3)
	top := q.calls[0].args
	assert.Equal(t, "w1", *(top[1].(*string)))
	assert.Equal(t, "u1", *(top[2].(*string)))
	assert.Equal(t, report.DefaultTopProducts, top[6])

	assert.Len(t, q.calls[1].args, 5)

	cat := q.calls[2].args
	assert.Equal(t, report.MaxCategories, cat[6])
	assert.Equal(t, UncategorizedLabel, cat[7])
}

func TestReportRepo_StockCountsUmbrales(t *testing.T) {
	q := &recordingQuerier{}
	_, err := NewReportRepository(q).StockCounts(context.Background(), repository.ReportScope{CompanyID: "c1"})
	require.ErrorIs(t, err, errFakeDB)

	args := q.calls[0].args
	assert.Equal(t, []any{"c1", (*string)(nil), report.StockoutThreshold, report.LowStockThreshold}, args)
}
