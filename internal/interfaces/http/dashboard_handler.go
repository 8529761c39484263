package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/analytics"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
)

type dashboardReports interface {
	Overview(ctx context.Context, c analytics.Caller, q dto.ReportQuery) (*dto.OverviewResponse, error)
	Summary(ctx context.Context, c analytics.Caller, q dto.SummaryQuery) (*dto.DashboardSummaryDTO, error)
	Report(ctx context.Context, c analytics.Caller, q dto.ReportQuery) (dto.ReportResponse, error)
}

type reportExporter interface {
	Export(ctx context.Context, c analytics.Caller, q dto.ReportQuery) (*analytics.ExportFile, error)
}

// DashboardHandler tableros y reportes de ventas.
type DashboardHandler struct {
	reporter dashboardReports
	exporter reportExporter
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(reporter dashboardReports, exporter reportExporter) *DashboardHandler {
	return &DashboardHandler{reporter: reporter, exporter: exporter}
}

func caller(c *fiber.Ctx) analytics.Caller {
	return analytics.Caller{CompanyID: GetCompanyID(c), UserID: GetUserID(c), Role: GetRole(c)}
}

// Overview tablero por períodos (GET /api/dashboard/overview).
// Devuelve semana, mes, trimestre, año y rango personalizado. Un período que falla vuelve en cero.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.reporter.Overview(c.UserContext(), caller(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Summary resumen del tablero principal (GET /api/dashboard/summary).
// Los usuarios que no son admin solo ven sus propias ventas.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	var q dto.SummaryQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.reporter.Summary(c.UserContext(), caller(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Report reporte de un período (GET /api/report).
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.reporter.Report(c.UserContext(), caller(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export reporte en PDF o Excel como adjunto (GET /api/report/export).
func (h *DashboardHandler) Export(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	file, err := h.exporter.Export(c.UserContext(), caller(c), q)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Body)
}
