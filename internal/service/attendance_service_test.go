package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
)

type attendanceStoreStub struct {
	existing  *models.AttendanceRecord
	getErr    error
	upserted  *models.AttendanceRecord
	upsertErr error
}

func (s *attendanceStoreStub) GetByDate(ctx context.Context, day time.Time) (*models.AttendanceRecord, error) {
	return s.existing, s.getErr
}

func (s *attendanceStoreStub) Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	s.upserted = record
	stored := *record
	stored.ID = "rec-1"
	return &stored, nil
}

type rosterStub struct {
	roster []models.Roster
	err    error
	calls  int
}

func (s *rosterStub) ListStudents(ctx context.Context) ([]models.Roster, error) {
	s.calls++
	return s.roster, s.err
}

func TestAttendanceMarkExplicitListReplacesVerbatim(t *testing.T) {
	store := &attendanceStoreStub{}
	roster := &rosterStub{roster: []models.Roster{{ID: "s1", Name: "Asha"}}}
	svc := NewAttendanceService(store, roster, nil, nil)

	students := []models.StudentAttendance{{StudentID: "s9", StudentName: "Zara", Present: true}}
	record, created, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{
		Date:     "2026-03-10",
		Students: &students,
	})
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, record.Students, 1)
	assert.Equal(t, "s9", record.Students[0].StudentID)
	assert.Zero(t, roster.calls)
}

func TestAttendanceMarkEmptyListStoresZeroAttendees(t *testing.T) {
	store := &attendanceStoreStub{}
	svc := NewAttendanceService(store, &rosterStub{}, nil, nil)

	empty := []models.StudentAttendance{}
	record, _, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{
		Date:     "2026-03-10",
		Students: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, record.Students)
	require.NotNil(t, store.upserted)
	assert.Empty(t, store.upserted.Students)
}

func TestAttendanceMarkRosterMergeKeepsPresentFlags(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	store := &attendanceStoreStub{
		existing: &models.AttendanceRecord{
			ID:   "rec-1",
			Date: day,
			Students: models.StudentList{
				{StudentID: "s1", StudentName: "Asha", Present: true},
			},
		},
	}
	roster := &rosterStub{roster: []models.Roster{
		{ID: "s1", Name: "Asha"},
		{ID: "s2", Name: "Ravi"},
	}}
	svc := NewAttendanceService(store, roster, nil, nil)

	record, created, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{Date: "2026-03-10"})
	require.NoError(t, err)
	assert.False(t, created)
	require.Len(t, record.Students, 2)
	assert.True(t, record.Students[0].Present)
	assert.False(t, record.Students[1].Present)
}

func TestAttendanceMarkRosterFirstTimeCreates(t *testing.T) {
	store := &attendanceStoreStub{}
	roster := &rosterStub{roster: []models.Roster{{ID: "s1", Name: "Asha"}}}
	svc := NewAttendanceService(store, roster, nil, nil)

	record, created, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{Date: "2026-03-10"})
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, record.Students, 1)
	assert.False(t, record.Students[0].Present)
}

func TestAttendanceGetRejectsBadDate(t *testing.T) {
	svc := NewAttendanceService(&attendanceStoreStub{}, &rosterStub{}, nil, nil)

	_, err := svc.Get(context.Background(), "10-03-2026")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)

	_, err = svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestAttendanceExportCSV(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	store := &attendanceStoreStub{
		existing: &models.AttendanceRecord{
			ID:   "rec-1",
			Date: day,
			Students: models.StudentList{
				{StudentID: "s1", StudentName: "Asha", Present: true},
				{StudentID: "s2", StudentName: "Ravi", Present: false},
			},
		},
	}
	svc := NewAttendanceService(store, &rosterStub{}, nil, nil)

	result, err := svc.Export(context.Background(), "2026-03-10", "csv")
	require.NoError(t, err)
	assert.Equal(t, "attendance-2026-03-10.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, string(result.Data), "Asha")
	assert.Contains(t, string(result.Data), "Present")
	assert.Contains(t, string(result.Data), "Absent")
}

func TestAttendanceExportUnmarkedDateNotFound(t *testing.T) {
	svc := NewAttendanceService(&attendanceStoreStub{}, &rosterStub{}, nil, nil)

	_, err := svc.Export(context.Background(), "2026-03-10", "pdf")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestAttendanceExportRejectsUnknownFormat(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	store := &attendanceStoreStub{
		existing: &models.AttendanceRecord{ID: "rec-1", Date: day},
	}
	svc := NewAttendanceService(store, &rosterStub{}, nil, nil)

	_, err := svc.Export(context.Background(), "2026-03-10", "xlsx")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
