package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
	"github.com/halcyonlab/agenda-api/pkg/export"
)

// Export formats supported by the agenda export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var agendaHeaders = []string{"Start", "End", "Title", "Origin", "Category", "Location"}

// ExportService renders the merged timeline into downloadable documents.
type ExportService struct {
	timeline timelineProvider
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(timeline timelineProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		timeline: timeline,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Agenda renders the user's merged timeline in the requested format and
// returns the document bytes plus its content type.
func (s *ExportService) Agenda(ctx context.Context, userID, format string) ([]byte, string, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	events, err := s.timeline.Timeline(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{Headers: agendaHeaders, Rows: make([]map[string]string, 0, len(events))}
	for _, ev := range events {
		data.Rows = append(data.Rows, map[string]string{
			"Start":    ev.Start.Format(time.RFC3339),
			"End":      ev.End.Format(time.RFC3339),
			"Title":    ev.Title,
			"Origin":   string(ev.Origin),
			"Category": ev.Category,
			"Location": ev.Location,
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	default:
		payload, err := s.pdf.Render(data, "Agenda")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	}
}
