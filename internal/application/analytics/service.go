// Package analytics tableros de ventas: overview por período, reporte, resumen y exportación.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/logger"
)

// AllWarehouses valor de ?warehouse= que desactiva el filtro.
const AllWarehouses = "all"

// maxParallelPeriods límite de variantes de período consultadas a la vez.
const maxParallelPeriods = 3

// Caller identidad tomada del token; nunca de la entrada del cliente.
type Caller struct {
	CompanyID string
	UserID    string
	Role      string
}

// Reporter orquesta las consultas agregadas y el formateo de los tableros.
type Reporter struct {
	reports    repository.ReportRepository
	warehouses repository.WarehouseRepository
	users      repository.UserRepository
	companies  repository.CompanyRepository
	log        *logger.Logger
	loc        *time.Location
	now        func() time.Time
}

// NewReporter construye el orquestador. loc fija "hoy" y los límites de cada bucket.
func NewReporter(
	reports repository.ReportRepository,
	warehouses repository.WarehouseRepository,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	log *logger.Logger,
	loc *time.Location,
) *Reporter {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Reporter{
		reports:    reports,
		warehouses: warehouses,
		users:      users,
		companies:  companies,
		log:        log,
		loc:        loc,
		now:        time.Now,
	}
}

func (r *Reporter) today() time.Time {
	return r.now().In(r.loc)
}

// identity resuelve usuario y empresa del token. Usuario inexistente o inactivo: 401.
func (r *Reporter) identity(ctx context.Context, c Caller) (*entity.User, *entity.Company, error) {
	user, err := r.users.GetByID(ctx, c.CompanyID, c.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if !user.Active() {
		return nil, nil, domain.ErrUnauthorized
	}
	company, err := r.companies.GetByID(ctx, c.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return nil, nil, fmt.Errorf("%w: empresa", domain.ErrNotFound)
	}
	return user, company, nil
}

// warehouseScope traduce el código de bodega a su ID. Vacío o "all" = todas.
func (r *Reporter) warehouseScope(ctx context.Context, companyID, code string) (*entity.Warehouse, error) {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, AllWarehouses) {
		return nil, nil
	}
	wh, err := r.warehouses.GetByCompanyAndCode(ctx, companyID, code)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %q", domain.ErrNotFound, code)
	}
	return wh, nil
}

// dateRange interpreta startDate/endDate (YYYY-MM-DD) en la zona configurada.
func (r *Reporter) dateRange(startDate, endDate string) (start, end *time.Time, err error) {
	if start, err = report.ParseDate(startDate, r.loc); err != nil {
		return nil, nil, err
	}
	if end, err = report.ParseDate(endDate, r.loc); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// loadPeriod ejecuta la capa de consultas sobre el rango de los buckets y arma el payload.
func (r *Reporter) loadPeriod(ctx context.Context, scope repository.ReportScope, buckets []report.Bucket) (report.PeriodData, error) {
	rng := report.Span(buckets)

	totals, err := r.reports.PeriodTotals(ctx, scope, rng)
	if err != nil {
		return report.PeriodData{}, err
	}
	if totals.Cost, err = r.reports.CostOfGoods(ctx, scope, rng); err != nil {
		return report.PeriodData{}, err
	}
	daily, err := r.reports.DailySales(ctx, scope, rng)
	if err != nil {
		return report.PeriodData{}, err
	}
	categories, err := r.reports.CategoryRevenue(ctx, scope, rng, report.MaxCategories)
	if err != nil {
		return report.PeriodData{}, err
	}
	products, err := r.reports.TopProducts(ctx, scope, rng, report.DefaultTopProducts)
	if err != nil {
		return report.PeriodData{}, err
	}
	stock, err := r.reports.StockCounts(ctx, scope)
	if err != nil {
		return report.PeriodData{}, err
	}

	return report.BuildPeriodData(buckets, report.Aggregates{
		Totals:     totals,
		Daily:      daily,
		Stock:      stock,
		Categories: categories,
		Products:   products,
	}, report.DefaultTopProducts), nil
}
