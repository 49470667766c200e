package service

import (
	"context"
	"fmt"
	"time"

	"github.com/campushub/ams-api/internal/models"
	appErrors "github.com/campushub/ams-api/pkg/errors"
	"github.com/campushub/ams-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered download: payload plus the headers the HTTP
// layer needs to serve it.
type ExportFile struct {
	Name        string
	ContentType string
	Payload     []byte
}

var exportHeaders = []string{
	"Student ID", "Student Name", "Type", "Event", "Date", "Organizer", "Position", "Recorded At",
}

// Export renders the teacher's full achievement list in the requested
// format.
func (s *AchievementService) Export(ctx context.Context, teacherID, format string) (*ExportFile, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	summaries, err := s.All(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	dataset := exportDataset(summaries)

	var payload []byte
	var contentType string
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, "Achievement Report")
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	name := fmt.Sprintf("achievements_%s_%s.%s", teacherID, time.Now().UTC().Format("20060102"), format)
	return &ExportFile{Name: name, ContentType: contentType, Payload: payload}, nil
}

func exportDataset(summaries []models.AchievementSummary) export.Dataset {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.StudentID,
			s.StudentName,
			s.Type,
			s.EventName,
			s.Date.Format("2006-01-02"),
			s.Organizer,
			s.Position,
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}
