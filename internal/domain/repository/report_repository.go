package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

// ReportScope alcance de las consultas de reportes. CompanyID es obligatorio;
// WarehouseID y UserID vacíos no filtran.
type ReportScope struct {
	CompanyID   string
	WarehouseID string
	UserID      string
}

// RecentSaleRow venta reciente para el resumen del tablero.
type RecentSaleRow struct {
	ID            string
	Date          time.Time
	ClientName    string
	WarehouseName string
	Amount        decimal.Decimal
	Status        string
	PaymentStatus string
	Items         int64
}

// StockAlertRow fila de stock en o por debajo del umbral de stock bajo.
type StockAlertRow struct {
	ProductID     string
	ProductName   string
	SKU           string
	WarehouseName string
	Quantity      decimal.Decimal
}

// ReportRepository capa de consultas agregadas de los tableros. Solo lectura.
// Toda implementación filtra por CompanyID en cada consulta; las ventas canceladas no cuentan.
type ReportRepository interface {
	PeriodTotals(ctx context.Context, scope ReportScope, rng report.Range) (report.Totals, error)
	DailySales(ctx context.Context, scope ReportScope, rng report.Range) ([]report.DailySales, error)
	TopProducts(ctx context.Context, scope ReportScope, rng report.Range, limit int) ([]report.ProductSales, error)
	CategoryRevenue(ctx context.Context, scope ReportScope, rng report.Range, limit int) ([]report.CategoryRevenue, error)
	// CostOfGoods Σ(cantidad × cost_price) de las líneas del período; costo nulo cuenta como 0.
	CostOfGoods(ctx context.Context, scope ReportScope, rng report.Range) (decimal.Decimal, error)
	// StockCounts no depende del período.
	StockCounts(ctx context.Context, scope ReportScope) (report.StockCounts, error)

	RecentSales(ctx context.Context, scope ReportScope, limit int) ([]RecentSaleRow, error)
	StockAlerts(ctx context.Context, scope ReportScope, limit int) ([]StockAlertRow, error)
}
