package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pathshala-edu/pathshala-api/internal/models"
)

// AttendanceRepository handles the one-row-per-day attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetByDate returns the record whose date falls within the given calendar
// day, or nil when no attendance was marked yet.
func (r *AttendanceRepository) GetByDate(ctx context.Context, day time.Time) (*models.AttendanceRecord, error) {
	start := day.Truncate(24 * time.Hour)
	end := start.Add(24*time.Hour - time.Millisecond)
	const query = `SELECT id, date, students, created_at, updated_at
FROM attendance_records WHERE date >= $1 AND date <= $2 LIMIT 1`
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, start, end); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance by date: %w", err)
	}
	return &record, nil
}

// Upsert stores the sheet for a date, replacing any existing student list.
// The unique date constraint makes concurrent marks last-write-wins.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO attendance_records (id, date, students, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (date)
DO UPDATE SET students = EXCLUDED.students, updated_at = EXCLUDED.updated_at
RETURNING id, date, students, created_at, updated_at`
	var stored models.AttendanceRecord
	if err := r.db.GetContext(ctx, &stored, query, record.ID, record.Date, record.Students, record.CreatedAt, record.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return &stored, nil
}
