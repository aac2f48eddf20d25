package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pathshala-edu/pathshala-api/internal/models"
)

// LectureRepository provides persistence for lecture videos.
type LectureRepository struct {
	db *sqlx.DB
}

// NewLectureRepository creates the repository.
func NewLectureRepository(db *sqlx.DB) *LectureRepository {
	return &LectureRepository{db: db}
}

// Create inserts a new lecture record.
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	if lecture.ID == "" {
		lecture.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if lecture.CreatedAt.IsZero() {
		lecture.CreatedAt = now
	}
	lecture.UpdatedAt = now
	const query = `INSERT INTO lectures (id, title, description, video_url, semester, size_bytes, uploaded_by, created_at, updated_at)
VALUES (:id, :title, :description, :video_url, :semester, :size_bytes, :uploaded_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lecture); err != nil {
		return fmt.Errorf("create lecture: %w", err)
	}
	return nil
}

// List returns lectures newest-first, optionally filtered by semester.
func (r *LectureRepository) List(ctx context.Context, semester int) ([]models.Lecture, error) {
	base := `SELECT id, title, description, video_url, semester, size_bytes, uploaded_by, created_at, updated_at FROM lectures`
	where := ""
	args := []interface{}{}
	if semester > 0 {
		where = " WHERE semester = $1"
		args = append(args, semester)
	}
	query := strings.Join([]string{base, where, " ORDER BY created_at DESC"}, "")
	var lectures []models.Lecture
	if err := r.db.SelectContext(ctx, &lectures, query, args...); err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return lectures, nil
}
