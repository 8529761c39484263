package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/config"
)

// Requiere TEST_DATABASE_URL. Cada ejecución migra un schema propio y lo borra al final.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(admin.Close)

	schema := "gs_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
	})

	cfg, err := buildPoolConfig(config.DBConfig{DatabaseURL: dsn, MaxConns: 4}, "gestion-stock-test")
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	n, err := Migrate(ctx, pool, MigrateUp, 0)
	require.NoError(t, err)
	require.Positive(t, n)
	return pool
}

type tenantFixture struct {
	company, warehouse, product, sale string
}

// seedTenant empresa con una bodega, un producto con costo y una venta del 10/03/2024.
func seedTenant(t *testing.T, pool *pgxpool.Pool, name string, stockQty, price, qty, cost int64, amountHT decimal.NullDecimal) tenantFixture {
	t.Helper()
	ctx := context.Background()
	f := tenantFixture{company: uuid.NewString(), warehouse: uuid.NewString(), product: uuid.NewString(), sale: uuid.NewString()}
	category := uuid.NewString()
	dPrice, dQty := decimal.NewFromInt(price), decimal.NewFromInt(qty)
	amount := dPrice.Mul(dQty)

	stmts := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO companies (id, name) VALUES ($1, $2)`, []any{f.company, name}},
		{`INSERT INTO warehouses (id, company_id, code, name) VALUES ($1, $2, 'principal', $3)`, []any{f.warehouse, f.company, "Entrepôt " + name}},
		{`INSERT INTO categories (id, company_id, name) VALUES ($1, $2, 'Hygiène')`, []any{category, f.company}},
		{`INSERT INTO products (id, company_id, category_id, sku, name, price, cost_price) VALUES ($1, $2, $3, 'SKU-1', $4, $5, $6)`,
			[]any{f.product, f.company, category, "Savon " + name, dPrice, decimal.NewFromInt(cost)}},
		{`INSERT INTO stock (product_id, warehouse_id, quantity) VALUES ($1, $2, $3)`, []any{f.product, f.warehouse, decimal.NewFromInt(stockQty)}},
		{`INSERT INTO sales (id, company_id, warehouse_id, date, amount, amount_ht, amount_tax) VALUES ($1, $2, $3, '2024-03-10', $4, $5::numeric, $4 - $5::numeric)`,
			[]any{f.sale, f.company, f.warehouse, amount, amountHT}},
		{`INSERT INTO sale_line_items (id, sale_id, product_id, name, quantity, price) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]any{uuid.NewString(), f.sale, f.product, "Savon " + name, dQty, dPrice}},
		// anulada: no entra en los agregados
		{`INSERT INTO sales (id, company_id, warehouse_id, date, amount, status) VALUES ($1, $2, $3, '2024-03-11', 999, 'cancelled')`,
			[]any{uuid.NewString(), f.company, f.warehouse}},
	}
	for _, s := range stmts {
		_, err := pool.Exec(ctx, s.sql, s.args...)
		require.NoError(t, err, s.sql)
	}
	return f
}

func TestReportRepo_DosEmpresasAisladas(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	awa := seedTenant(t, pool, "Awa", 0, 118, 1, 40, decimal.NewNullDecimal(decimal.NewFromInt(100)))
	kone := seedTenant(t, pool, "Koné", 5, 500, 2, 10, decimal.NullDecimal{})

	repo := NewReportRepository(pool)
	march := report.Range{
		Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	scope := repository.ReportScope{CompanyID: awa.company}

	totals, err := repo.PeriodTotals(ctx, scope, march)
	require.NoError(t, err)
	assert.True(t, totals.RevenueTTC.Equal(decimal.NewFromInt(118)), totals.RevenueTTC.String())
	assert.True(t, totals.RevenueHT.Equal(decimal.NewFromInt(100)), totals.RevenueHT.String())
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(18)), totals.Tax.String())
	assert.Equal(t, int64(1), totals.Orders)
	assert.Zero(t, totals.Clients)

	cost, err := repo.CostOfGoods(ctx, scope, march)
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.NewFromInt(40)), cost.String())

	daily, err := repo.DailySales(ctx, scope, march)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, "2024-03-10", daily[0].Date.Format(report.DateLayout))
	assert.True(t, daily[0].Cost.Equal(decimal.NewFromInt(40)))

	top, err := repo.TopProducts(ctx, scope, march, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Savon Awa", top[0].Name)
	assert.Equal(t, awa.product, top[0].ProductID)

	cats, err := repo.CategoryRevenue(ctx, scope, march, report.MaxCategories)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Hygiène", cats[0].Name)
	assert.True(t, cats[0].RevenueTTC.Equal(decimal.NewFromInt(118)))

	stock, err := repo.StockCounts(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, report.StockCounts{Stockout: 1, LowStock: 0, Products: 1}, stock)

	recent, err := repo.RecentSales(ctx, scope, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2, "las anuladas aparecen en las recientes")
	for _, s := range recent {
		assert.NotEqual(t, kone.sale, s.ID)
		assert.Equal(t, "Entrepôt Awa", s.WarehouseName)
	}

	alerts, err := repo.StockAlerts(ctx, scope, 10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, awa.product, alerts[0].ProductID)

	// La otra empresa solo ve lo suyo.
	other := repository.ReportScope{CompanyID: kone.company}
	totals, err = repo.PeriodTotals(ctx, other, march)
	require.NoError(t, err)
	assert.True(t, totals.RevenueTTC.Equal(decimal.NewFromInt(1000)), totals.RevenueTTC.String())
	assert.Equal(t, int64(1), totals.Orders)
	cost, err = repo.CostOfGoods(ctx, other, march)
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.NewFromInt(20)), cost.String())
	stock, err = repo.StockCounts(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, report.StockCounts{Stockout: 0, LowStock: 1, Products: 1}, stock)

	// Bodega de otra empresa como filtro: nada.
	cross := repository.ReportScope{CompanyID: awa.company, WarehouseID: kone.warehouse}
	totals, err = repo.PeriodTotals(ctx, cross, march)
	require.NoError(t, err)
	assert.Zero(t, totals.Orders)
	assert.True(t, totals.RevenueTTC.IsZero())
	top, err = repo.TopProducts(ctx, cross, march, 5)
	require.NoError(t, err)
	assert.Empty(t, top)
	stock, err = repo.StockCounts(ctx, cross)
	require.NoError(t, err)
	assert.Zero(t, stock.Stockout+stock.LowStock)
}
