package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
	"github.com/j1progress/progress-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportedFile is a rendered document ready to stream to the client.
type ExportedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the filtered report list into downloadable files.
type ExportService struct {
	store  reportStore
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(store reportStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		store:  store,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
		now:    time.Now,
	}
}

// Reports renders the filtered report list in the requested format.
func (s *ExportService) Reports(ctx context.Context, filter ReportFilter, format ExportFormat) (*ExportedFile, error) {
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterReports(reports, units, projects, filter)
	dataset := reportDataset(filtered, units)
	stamp := s.now().UTC().Format("20060102-150405")

	switch format {
	case FormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportedFile{
			Filename:    fmt.Sprintf("reports-%s.csv", stamp),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := s.pdf.Render(dataset, "Progress Reports")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportedFile{
			Filename:    fmt.Sprintf("reports-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func reportDataset(reports []models.Report, units []models.Unit) export.Dataset {
	unitsByID := make(map[string]models.Unit, len(units))
	for _, u := range units {
		unitsByID[u.ID] = u
	}
	rows := make([]map[string]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, map[string]string{
			"Unit":             unitShortLabel(unitsByID, r.UnitID),
			"Project":          r.ProjectName,
			"From":             r.ReportDateStart,
			"To":               r.ReportDateEnd,
			"Progress":         fmt.Sprintf("%d%%", r.Progress),
			"Past Performance": r.PastPerformance,
			"Next Plan":        r.NextPlan,
			"Obstacles":        r.Obstacles,
			"Remarks":          r.Remarks,
		})
	}
	return export.Dataset{
		Headers: []string{"Unit", "Project", "From", "To", "Progress", "Past Performance", "Next Plan", "Obstacles", "Remarks"},
		Rows:    rows,
	}
}
