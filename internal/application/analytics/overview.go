package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

// overviewPeriods orden de las variantes del overview.
var overviewPeriods = [...]report.Period{
	report.PeriodWeek,
	report.PeriodMonth,
	report.PeriodQuarter,
	report.PeriodYear,
	report.PeriodCustom,
}

// Overview calcula todas las variantes de período. El fallo de una variante se registra
// y se reemplaza por datos en cero; solo la identidad, la bodega y las fechas abortan.
func (r *Reporter) Overview(ctx context.Context, c Caller, q dto.ReportQuery) (*dto.OverviewResponse, error) {
	if _, _, err := r.identity(ctx, c); err != nil {
		return nil, err
	}
	wh, err := r.warehouseScope(ctx, c.CompanyID, q.Warehouse)
	if err != nil {
		return nil, err
	}
	start, end, err := r.dateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	scope := repository.ReportScope{CompanyID: c.CompanyID}
	if wh != nil {
		scope.WarehouseID = wh.ID
	}

	today := r.today()
	buckets := make([][]report.Bucket, len(overviewPeriods))
	for i, p := range overviewPeriods {
		if buckets[i], err = report.BuildBuckets(p, today, start, end); err != nil {
			return nil, err
		}
	}

	results := make([]report.PeriodData, len(overviewPeriods))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPeriods)
	for i, p := range overviewPeriods {
		g.Go(func() error {
			data, err := r.loadPeriod(gctx, scope, buckets[i])
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				r.log.WithCompany(c.CompanyID).Warn().Err(err).
					Str("period", string(p)).
					Str("warehouse_id", scope.WarehouseID).
					Msg("overview: período sin datos")
				data = report.EmptyPeriodData(buckets[i])
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	return &dto.OverviewResponse{
		Week:    results[0],
		Month:   results[1],
		Quarter: results[2],
		Year:    results[3],
		Custom:  results[4],
	}, nil
}

// Report calcula un solo período ({<period>: PeriodData}) con el mismo KPISet del overview.
// Igual que en el overview, un fallo de consulta deja el período en cero.
func (r *Reporter) Report(ctx context.Context, c Caller, q dto.ReportQuery) (dto.ReportResponse, error) {
	req, err := r.resolve(ctx, c, q)
	if err != nil {
		return nil, err
	}
	data, err := r.loadPeriod(ctx, req.scope, req.buckets)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.log.WithCompany(c.CompanyID).Warn().Err(err).
			Str("period", string(req.period)).
			Str("warehouse_id", req.scope.WarehouseID).
			Msg("report: período sin datos")
		data = report.EmptyPeriodData(req.buckets)
	}
	return dto.ReportResponse{string(req.period): data}, nil
}

// periodRequest período resuelto: buckets, alcance y cabecera del documento.
type periodRequest struct {
	period  report.Period
	buckets []report.Bucket
	scope   repository.ReportScope
	meta    reportMeta
}

func (r *Reporter) resolve(ctx context.Context, c Caller, q dto.ReportQuery) (*periodRequest, error) {
	period, err := report.ParsePeriod(q.Period)
	if err != nil {
		return nil, err
	}
	user, company, err := r.identity(ctx, c)
	if err != nil {
		return nil, err
	}
	wh, err := r.warehouseScope(ctx, c.CompanyID, q.Warehouse)
	if err != nil {
		return nil, err
	}
	start, end, err := r.dateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	buckets, err := report.BuildBuckets(period, r.today(), start, end)
	if err != nil {
		return nil, err
	}

	req := &periodRequest{
		period:  period,
		buckets: buckets,
		scope:   repository.ReportScope{CompanyID: c.CompanyID},
		meta:    reportMeta{Company: company.Name, Currency: company.Currency, User: user.Name, Warehouse: "Tous les entrepôts", Range: report.Span(buckets)},
	}
	if wh != nil {
		req.scope.WarehouseID = wh.ID
		req.meta.Warehouse = wh.Name
	}
	return req, nil
}

// single lo usa Export. A diferencia de Report, un fallo de consulta se propaga.
func (r *Reporter) single(ctx context.Context, c Caller, q dto.ReportQuery) (report.Period, report.PeriodData, reportMeta, error) {
	req, err := r.resolve(ctx, c, q)
	if err != nil {
		return "", report.PeriodData{}, reportMeta{}, err
	}
	data, err := r.loadPeriod(ctx, req.scope, req.buckets)
	if err != nil {
		return "", report.PeriodData{}, reportMeta{}, fmt.Errorf("report %s: %w", req.period, err)
	}
	return req.period, data, req.meta, nil
}
