package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
	"github.com/pathshala-edu/pathshala-api/pkg/export"
)

type attendanceStore interface {
	GetByDate(ctx context.Context, day time.Time) (*models.AttendanceRecord, error)
	Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error)
}

type rosterLister interface {
	ListStudents(ctx context.Context) ([]models.Roster, error)
}

// ExportResult bundles a rendered day sheet for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AttendanceService implements the one-record-per-day attendance upsert.
type AttendanceService struct {
	repo      attendanceStore
	users     rosterLister
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo attendanceStore, users rosterLister, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AttendanceService{
		repo:      repo,
		users:     users,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// Get returns the record for the given calendar day, or nil when unmarked.
func (s *AttendanceService) Get(ctx context.Context, dateStr string) (*models.AttendanceRecord, error) {
	day, err := parseDay(dateStr)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.GetByDate(ctx, day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	return record, nil
}

// Mark upserts the sheet for a date. When the request carries an explicit
// student list it replaces the stored list verbatim (an empty list is stored
// as zero attendees). Without one, the current student roster is merged
// against any existing record: known students keep their present flag, new
// students default to absent. Returns the stored record and whether a new
// day record was created.
func (s *AttendanceService) Mark(ctx context.Context, req dto.MarkAttendanceRequest) (*models.AttendanceRecord, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date is required")
	}
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, false, err
	}

	if req.Students != nil {
		stored, err := s.repo.Upsert(ctx, &models.AttendanceRecord{Date: day, Students: *req.Students})
		if err != nil {
			return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
		}
		return stored, true, nil
	}

	roster, err := s.users.ListStudents(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student roster")
	}

	existing, err := s.repo.GetByDate(ctx, day)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}

	known := make(map[string]bool)
	if existing != nil {
		for _, student := range existing.Students {
			known[student.StudentID] = student.Present
		}
	}

	students := make(models.StudentList, 0, len(roster))
	for _, entry := range roster {
		students = append(students, models.StudentAttendance{
			StudentID:   entry.ID,
			StudentName: entry.Name,
			Present:     known[entry.ID],
		})
	}

	stored, err := s.repo.Upsert(ctx, &models.AttendanceRecord{Date: day, Students: students})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
	}
	return stored, existing == nil, nil
}

// Export renders the day sheet as CSV or PDF for download.
func (s *AttendanceService) Export(ctx context.Context, dateStr, format string) (*ExportResult, error) {
	record, err := s.Get(ctx, dateStr)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no attendance marked for this date")
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Status"},
		Rows:    make([]map[string]string, 0, len(record.Students)),
	}
	for _, student := range record.Students {
		status := "Absent"
		if student.Present {
			status = "Present"
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student": student.StudentName,
			"Status":  status,
		})
	}

	day := record.Date.Format("2006-01-02")
	switch format {
	case "", "pdf":
		data, err := s.pdf.Render(dataset, fmt.Sprintf("Attendance %s", day))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance sheet")
		}
		return &ExportResult{Filename: fmt.Sprintf("attendance-%s.pdf", day), ContentType: "application/pdf", Data: data}, nil
	case "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance sheet")
		}
		return &ExportResult{Filename: fmt.Sprintf("attendance-%s.csv", day), ContentType: "text/csv", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be pdf or csv")
	}
}

// parseDay accepts YYYY-MM-DD or a full RFC3339 timestamp and truncates to
// midnight UTC so one calendar day maps to exactly one record.
func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	if day, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
		return day, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC().Truncate(24 * time.Hour), nil
	}
	return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
}
