package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

// ReportQuery parámetros comunes de overview, report y export.
// Warehouse es el código de la bodega; vacío o "all" = todas.
type ReportQuery struct {
	Period    string `query:"period" validate:"omitempty,oneof=week month quarter year custom"`
	Warehouse string `query:"warehouse" validate:"omitempty,max=60"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Format    string `query:"format" validate:"omitempty,oneof=pdf xlsx"`
}

// OverviewResponse respuesta de GET /api/dashboard/overview: todas las variantes de período.
type OverviewResponse struct {
	Week    report.PeriodData `json:"week"`
	Month   report.PeriodData `json:"month"`
	Quarter report.PeriodData `json:"quarter"`
	Year    report.PeriodData `json:"year"`
	Custom  report.PeriodData `json:"custom"`
}

// ReportResponse respuesta de GET /api/report: {<period>: PeriodData}.
type ReportResponse map[string]report.PeriodData

// SummaryQuery parámetros de GET /api/dashboard/summary.
type SummaryQuery struct {
	Days     int `query:"days" validate:"omitempty,min=1,max=90"`
	Limit    int `query:"limit" validate:"omitempty,min=1,max=50"`
	MovLimit int `query:"movLimit" validate:"omitempty,min=1,max=100"`
}

// SummaryStats KPIs del resumen sobre los últimos Days días.
type SummaryStats struct {
	report.KPISet
	Products int64 `json:"products"`
	Days     int   `json:"days"`
}

type RecentSaleDTO struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Client        string          `json:"client"`
	Warehouse     string          `json:"warehouse"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Items         int64           `json:"items"`
}

type StockAlertDTO struct {
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	SKU       string          `json:"sku,omitempty"`
	Warehouse string          `json:"warehouse"`
	Quantity  decimal.Decimal `json:"quantity"`
	Level     string          `json:"level"` // out | low
}

type UserInfoDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Para usuarios no admin todas las cifras se limitan a sus propias ventas.
type DashboardSummaryDTO struct {
	Stats       SummaryStats        `json:"stats"`
	RecentSales []RecentSaleDTO     `json:"recent_sales"`
	SalesChart  []report.Point      `json:"sales_chart"`
	TopProducts []report.TopProduct `json:"top_products"`
	StockAlerts []StockAlertDTO     `json:"stock_alerts"`
	UserInfo    UserInfoDTO         `json:"user_info"`
}
