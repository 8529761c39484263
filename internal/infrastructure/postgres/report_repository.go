package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo capa de consultas agregadas de los tableros. Solo lectura, sin transacciones.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// UncategorizedLabel nombre del grupo de productos sin categoría.
const UncategorizedLabel = "Sans catégorie"

// ── SQL ───────────────────────────────────────────────────────────────────────
//
// Parámetros comunes de las consultas sobre ventas:
//   $1 company_id, $2 warehouse_id (NULL = todas), $3 user_id (NULL = todos),
//   $4 fecha inicio, $5 fecha fin (inclusive), $6 tasa de impuesto por defecto.

const salesScope = `
	s.company_id = $1
	AND ($2::uuid IS NULL OR s.warehouse_id = $2)
	AND ($3::uuid IS NULL OR s.user_id = $3)
	AND s.date BETWEEN $4::date AND $5::date
	AND s.status <> 'cancelled'`

// monto HT de la venta; si no se guardó se calcula con la tasa de la venta o la de defecto.
const saleHT = `COALESCE(s.amount_ht, s.amount / (1 + COALESCE(s.tax_rate, $6::numeric) / 100))`

// monto HT de una línea: proporcional al HT de la venta.
const lineHT = `
	CASE WHEN s.amount_ht IS NOT NULL AND s.amount <> 0
		THEN li.quantity * li.price * s.amount_ht / s.amount
		ELSE li.quantity * li.price / (1 + COALESCE(s.tax_rate, $6::numeric) / 100)
	END`

const qPeriodTotals = `
	SELECT
		COALESCE(SUM(s.amount), 0),
		COALESCE(SUM(` + saleHT + `), 0),
		COALESCE(SUM(COALESCE(s.amount_tax, s.amount - ` + saleHT + `)), 0),
		COUNT(*),
		COUNT(DISTINCT s.client_id)
	FROM sales s
	WHERE ` + salesScope

const qDailySales = `
	WITH scoped AS (
		SELECT s.id, s.company_id, s.date, s.amount, ` + saleHT + ` AS ht
		FROM sales s
		WHERE ` + salesScope + `
	), cost AS (
		SELECT li.sale_id, SUM(li.quantity * COALESCE(p.cost_price, 0)) AS cost
		FROM sale_line_items li
		JOIN scoped sc ON sc.id = li.sale_id
		JOIN products p ON p.id = li.product_id AND p.company_id = sc.company_id
		GROUP BY li.sale_id
	)
	SELECT sc.date, SUM(sc.amount), SUM(sc.ht), COUNT(*), COALESCE(SUM(c.cost), 0)
	FROM scoped sc
	LEFT JOIN cost c ON c.sale_id = sc.id
	GROUP BY sc.date
	ORDER BY sc.date`

const qTopProducts = `
	SELECT
		COALESCE(li.product_id::text, ''),
		COALESCE(p.name, li.name) AS product_name,
		SUM(li.quantity),
		SUM(li.quantity * li.price) AS revenue,
		SUM(` + lineHT + `)
	FROM sale_line_items li
	JOIN sales s ON s.id = li.sale_id
	LEFT JOIN products p ON p.id = li.product_id AND p.company_id = s.company_id
	WHERE ` + salesScope + `
	GROUP BY li.product_id, COALESCE(p.name, li.name)
	ORDER BY revenue DESC, product_name
	LIMIT $7`

const qCategoryRevenue = `
	SELECT
		COALESCE(c.name, $8::text) AS category_name,
		SUM(li.quantity * li.price) AS revenue,
		SUM(` + lineHT + `)
	FROM sale_line_items li
	JOIN sales s ON s.id = li.sale_id
	JOIN products p ON p.id = li.product_id AND p.company_id = s.company_id
	LEFT JOIN categories c ON c.id = p.category_id AND c.company_id = s.company_id
	WHERE ` + salesScope + `
	GROUP BY COALESCE(c.name, $8::text)
	ORDER BY revenue DESC, category_name
	LIMIT $7`

const qCostOfGoods = `
	SELECT COALESCE(SUM(li.quantity * COALESCE(p.cost_price, 0)), 0)
	FROM sale_line_items li
	JOIN sales s ON s.id = li.sale_id
	JOIN products p ON p.id = li.product_id AND p.company_id = s.company_id
	WHERE ` + salesScope

// $1 company_id, $2 warehouse_id, $3 umbral agotado, $4 umbral stock bajo.
const qStockCounts = `
	SELECT
		COUNT(*) FILTER (WHERE st.quantity <= $3),
		COUNT(*) FILTER (WHERE st.quantity > $3 AND st.quantity <= $4),
		(SELECT COUNT(*) FROM products WHERE company_id = $1)
	FROM stock st
	JOIN products p ON p.id = st.product_id
	WHERE p.company_id = $1
		AND ($2::uuid IS NULL OR st.warehouse_id = $2)`

// $1 company_id, $2 warehouse_id, $3 user_id, $4 límite.
const qRecentSales = `
	SELECT
		s.id, s.date, COALESCE(c.name, ''), w.name, s.amount, s.status, s.payment_status,
		(SELECT COUNT(*) FROM sale_line_items li WHERE li.sale_id = s.id)
	FROM sales s
	JOIN warehouses w ON w.id = s.warehouse_id AND w.company_id = s.company_id
	LEFT JOIN clients c ON c.id = s.client_id AND c.company_id = s.company_id
	WHERE s.company_id = $1
		AND ($2::uuid IS NULL OR s.warehouse_id = $2)
		AND ($3::uuid IS NULL OR s.user_id = $3)
	ORDER BY s.date DESC, s.created_at DESC
	LIMIT $4`

// $1 company_id, $2 warehouse_id, $3 umbral stock bajo, $4 límite.
const qStockAlerts = `
	SELECT p.id, p.name, COALESCE(p.sku, ''), w.name, st.quantity
	FROM stock st
	JOIN products p ON p.id = st.product_id
	JOIN warehouses w ON w.id = st.warehouse_id AND w.company_id = p.company_id
	WHERE p.company_id = $1
		AND ($2::uuid IS NULL OR st.warehouse_id = $2)
		AND st.quantity <= $3
	ORDER BY st.quantity ASC, p.name
	LIMIT $4`

// reportQueries todas las consultas del repositorio (verificación de aislamiento por tenant).
var reportQueries = map[string]string{
	"PeriodTotals":    qPeriodTotals,
	"DailySales":      qDailySales,
	"TopProducts":     qTopProducts,
	"CategoryRevenue": qCategoryRevenue,
	"CostOfGoods":     qCostOfGoods,
	"StockCounts":     qStockCounts,
	"RecentSales":     qRecentSales,
	"StockAlerts":     qStockAlerts,
}

// ── Argumentos ────────────────────────────────────────────────────────────────

func salesArgs(scope repository.ReportScope, rng report.Range) []any {
	return []any{
		scope.CompanyID,
		nullString(scope.WarehouseID),
		nullString(scope.UserID),
		rng.Start.Format(report.DateLayout),
		rng.End.Format(report.DateLayout),
		report.DefaultTaxRate,
	}
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// PeriodTotals ingreso TTC/HT, impuesto, número de ventas y clientes distintos del período.
func (r *ReportRepo) PeriodTotals(ctx context.Context, scope repository.ReportScope, rng report.Range) (report.Totals, error) {
	var t report.Totals
	err := r.q.QueryRow(ctx, qPeriodTotals, salesArgs(scope, rng)...).Scan(
		&t.RevenueTTC, &t.RevenueHT, &t.Tax, &t.Orders, &t.Clients,
	)
	if err != nil {
		return report.Totals{}, fmt.Errorf("report.PeriodTotals: %w", err)
	}
	return t, nil
}

// DailySales agregados por fecha (solo fechas con ventas).
func (r *ReportRepo) DailySales(ctx context.Context, scope repository.ReportScope, rng report.Range) ([]report.DailySales, error) {
	rows, err := r.q.Query(ctx, qDailySales, salesArgs(scope, rng)...)
	if err != nil {
		return nil, fmt.Errorf("report.DailySales: %w", err)
	}
	defer rows.Close()

	list := make([]report.DailySales, 0)
	for rows.Next() {
		var d report.DailySales
		if err := rows.Scan(&d.Date, &d.RevenueTTC, &d.RevenueHT, &d.Orders, &d.Cost); err != nil {
			return nil, fmt.Errorf("report.DailySales scan: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// TopProducts productos con más ingreso en el período.
func (r *ReportRepo) TopProducts(ctx context.Context, scope repository.ReportScope, rng report.Range, limit int) ([]report.ProductSales, error) {
	if limit <= 0 {
		limit = report.DefaultTopProducts
	}
	rows, err := r.q.Query(ctx, qTopProducts, append(salesArgs(scope, rng), limit)...)
	if err != nil {
		return nil, fmt.Errorf("report.TopProducts: %w", err)
	}
	defer rows.Close()

	list := make([]report.ProductSales, 0)
	for rows.Next() {
		var p report.ProductSales
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.RevenueTTC, &p.RevenueHT); err != nil {
			return nil, fmt.Errorf("report.TopProducts scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CategoryRevenue ingreso por categoría. Las líneas sin producto quedan fuera.
func (r *ReportRepo) CategoryRevenue(ctx context.Context, scope repository.ReportScope, rng report.Range, limit int) ([]report.CategoryRevenue, error) {
	if limit <= 0 {
		limit = report.MaxCategories
	}
	rows, err := r.q.Query(ctx, qCategoryRevenue, append(salesArgs(scope, rng), limit, UncategorizedLabel)...)
	if err != nil {
		return nil, fmt.Errorf("report.CategoryRevenue: %w", err)
	}
	defer rows.Close()

	list := make([]report.CategoryRevenue, 0)
	for rows.Next() {
		var c report.CategoryRevenue
		if err := rows.Scan(&c.Name, &c.RevenueTTC, &c.RevenueHT); err != nil {
			return nil, fmt.Errorf("report.CategoryRevenue scan: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CostOfGoods costo de lo vendido en el período.
func (r *ReportRepo) CostOfGoods(ctx context.Context, scope repository.ReportScope, rng report.Range) (decimal.Decimal, error) {
	var cost decimal.Decimal
	// sin $6: la consulta no usa la tasa por defecto
	args := salesArgs(scope, rng)[:5]
	if err := r.q.QueryRow(ctx, qCostOfGoods, args...).Scan(&cost); err != nil {
		return decimal.Zero, fmt.Errorf("report.CostOfGoods: %w", err)
	}
	return cost, nil
}

// StockCounts filas agotadas, con stock bajo y total de productos del tenant.
func (r *ReportRepo) StockCounts(ctx context.Context, scope repository.ReportScope) (report.StockCounts, error) {
	var s report.StockCounts
	err := r.q.QueryRow(ctx, qStockCounts,
		scope.CompanyID, nullString(scope.WarehouseID), report.StockoutThreshold, report.LowStockThreshold,
	).Scan(&s.Stockout, &s.LowStock, &s.Products)
	if err != nil {
		return report.StockCounts{}, fmt.Errorf("report.StockCounts: %w", err)
	}
	return s, nil
}

// RecentSales últimas ventas (cualquier estado).
func (r *ReportRepo) RecentSales(ctx context.Context, scope repository.ReportScope, limit int) ([]repository.RecentSaleRow, error) {
	rows, err := r.q.Query(ctx, qRecentSales,
		scope.CompanyID, nullString(scope.WarehouseID), nullString(scope.UserID), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("report.RecentSales: %w", err)
	}
	defer rows.Close()

	list := make([]repository.RecentSaleRow, 0)
	for rows.Next() {
		var s repository.RecentSaleRow
		if err := rows.Scan(&s.ID, &s.Date, &s.ClientName, &s.WarehouseName, &s.Amount, &s.Status, &s.PaymentStatus, &s.Items); err != nil {
			return nil, fmt.Errorf("report.RecentSales scan: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// StockAlerts filas de stock en o bajo el umbral de stock bajo, menor cantidad primero.
func (r *ReportRepo) StockAlerts(ctx context.Context, scope repository.ReportScope, limit int) ([]repository.StockAlertRow, error) {
	rows, err := r.q.Query(ctx, qStockAlerts,
		scope.CompanyID, nullString(scope.WarehouseID), report.LowStockThreshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("report.StockAlerts: %w", err)
	}
	defer rows.Close()

	list := make([]repository.StockAlertRow, 0)
	for rows.Next() {
		var a repository.StockAlertRow
		if err := rows.Scan(&a.ProductID, &a.ProductName, &a.SKU, &a.WarehouseName, &a.Quantity); err != nil {
			return nil, fmt.Errorf("report.StockAlerts scan: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
