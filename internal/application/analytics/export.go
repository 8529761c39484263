package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
)

// Formatos de exportación soportados.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// reportMeta datos de cabecera del documento exportado.
type reportMeta struct {
	Company   string
	Currency  string
	User      string
	Warehouse string
	Range     report.Range
}

// ReportDocument entrada de los generadores de documentos.
type ReportDocument struct {
	Company     string
	Currency    string
	GeneratedBy string
	Warehouse   string
	Period      report.Period
	Range       report.Range
	GeneratedAt time.Time
	Data        report.PeriodData
}

// Renderer puerto de salida: genera el archivo de un reporte (PDF, XLSX).
type Renderer interface {
	Render(doc ReportDocument) ([]byte, error)
	ContentType() string
}

// ExportFile archivo listo para enviar al cliente.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// Exporter genera los archivos de GET /api/report/export.
type Exporter struct {
	reporter  *Reporter
	renderers map[string]Renderer
}

// NewExporter registra un Renderer por formato ("pdf", "xlsx").
func NewExporter(reporter *Reporter, renderers map[string]Renderer) *Exporter {
	return &Exporter{reporter: reporter, renderers: renderers}
}

// Export calcula el período pedido y lo entrega en el formato indicado (pdf por defecto).
func (e *Exporter) Export(ctx context.Context, c Caller, q dto.ReportQuery) (*ExportFile, error) {
	format := strings.ToLower(q.Format)
	if format == "" {
		format = FormatPDF
	}
	renderer, ok := e.renderers[format]
	if !ok {
		return nil, domain.NewValidationError("formato no soportado", "format")
	}

	period, data, meta, err := e.reporter.single(ctx, c, q)
	if err != nil {
		return nil, err
	}
	now := e.reporter.today()
	body, err := renderer.Render(ReportDocument{
		Company:     meta.Company,
		Currency:    meta.Currency,
		GeneratedBy: meta.User,
		Warehouse:   meta.Warehouse,
		Period:      period,
		Range:       meta.Range,
		GeneratedAt: now,
		Data:        data,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return &ExportFile{
		Name:        fmt.Sprintf("rapport-%s-%s.%s", period, now.Format(report.DateLayout), format),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}
