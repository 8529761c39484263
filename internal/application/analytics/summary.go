package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

// Valores por defecto del resumen.
const (
	DefaultSummaryDays     = 7
	DefaultSummaryLimit    = 5
	DefaultSummaryMovLimit = 10
)

var stockoutQty = decimal.NewFromInt(report.StockoutThreshold)

// Summary resumen del tablero sobre los últimos Days días. Para un usuario no admin
// todas las cifras de ventas se limitan a las que él registró.
func (r *Reporter) Summary(ctx context.Context, c Caller, q dto.SummaryQuery) (*dto.DashboardSummaryDTO, error) {
	if q.Days <= 0 {
		q.Days = DefaultSummaryDays
	}
	if q.Limit <= 0 {
		q.Limit = DefaultSummaryLimit
	}
	if q.MovLimit <= 0 {
		q.MovLimit = DefaultSummaryMovLimit
	}

	user, company, err := r.identity(ctx, c)
	if err != nil {
		return nil, err
	}
	scope := repository.ReportScope{CompanyID: c.CompanyID}
	if !user.IsAdmin() {
		scope.UserID = user.ID
	}

	today := r.today()
	from := today.AddDate(0, 0, -(q.Days - 1))
	buckets, err := report.BuildBuckets(report.PeriodCustom, today, &from, &today)
	if err != nil {
		return nil, err
	}
	rng := report.Span(buckets)

	totals, err := r.reports.PeriodTotals(ctx, scope, rng)
	if err != nil {
		return nil, fmt.Errorf("summary totals: %w", err)
	}
	if totals.Cost, err = r.reports.CostOfGoods(ctx, scope, rng); err != nil {
		return nil, fmt.Errorf("summary cost: %w", err)
	}
	stock, err := r.reports.StockCounts(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("summary stock: %w", err)
	}
	daily, err := r.reports.DailySales(ctx, scope, rng)
	if err != nil {
		return nil, fmt.Errorf("summary daily: %w", err)
	}
	products, err := r.reports.TopProducts(ctx, scope, rng, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("summary top products: %w", err)
	}
	recent, err := r.reports.RecentSales(ctx, scope, q.MovLimit)
	if err != nil {
		return nil, fmt.Errorf("summary recent sales: %w", err)
	}
	alerts, err := r.reports.StockAlerts(ctx, scope, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("summary stock alerts: %w", err)
	}

	out := &dto.DashboardSummaryDTO{
		Stats: dto.SummaryStats{
			KPISet:   report.BuildKPIs(totals, stock),
			Products: stock.Products,
			Days:     q.Days,
		},
		RecentSales: make([]dto.RecentSaleDTO, 0, len(recent)),
		SalesChart:  report.Normalize(buckets, daily),
		TopProducts: report.TopProducts(products, q.Limit),
		StockAlerts: make([]dto.StockAlertDTO, 0, len(alerts)),
		UserInfo: dto.UserInfoDTO{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
			Company: company.Name,
		},
	}
	for _, s := range recent {
		client := s.ClientName
		if client == "" {
			client = "Client comptoir"
		}
		out.RecentSales = append(out.RecentSales, dto.RecentSaleDTO{
			ID:            s.ID,
			Date:          s.Date.Format(report.DateLayout),
			Client:        client,
			Warehouse:     s.WarehouseName,
			Amount:        s.Amount,
			Status:        s.Status,
			PaymentStatus: s.PaymentStatus,
			Items:         s.Items,
		})
	}
	for _, a := range alerts {
		level := "low"
		if a.Quantity.LessThanOrEqual(stockoutQty) {
			level = "out"
		}
		out.StockAlerts = append(out.StockAlerts, dto.StockAlertDTO{
			ProductID: a.ProductID,
			Product:   a.ProductName,
			SKU:       a.SKU,
			Warehouse: a.WarehouseName,
			Quantity:  a.Quantity,
			Level:     level,
		})
	}
	return out, nil
}
