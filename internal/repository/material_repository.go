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

// MaterialRepository provides persistence for study materials.
type MaterialRepository struct {
	db *sqlx.DB
}

// NewMaterialRepository creates the repository.
func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create inserts a new material record.
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if material.CreatedAt.IsZero() {
		material.CreatedAt = now
	}
	material.UpdatedAt = now
	const query = `INSERT INTO materials (id, title, description, file_url, file_type, semester, size_bytes, uploaded_by, created_at, updated_at)
VALUES (:id, :title, :description, :file_url, :file_type, :semester, :size_bytes, :uploaded_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, material); err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// List returns materials newest-first, optionally filtered by semester.
func (r *MaterialRepository) List(ctx context.Context, semester int) ([]models.Material, error) {
	base := `SELECT id, title, description, file_url, file_type, semester, size_bytes, uploaded_by, created_at, updated_at FROM materials`
	where := ""
	args := []interface{}{}
	if semester > 0 {
		where = " WHERE semester = $1"
		args = append(args, semester)
	}
	query := strings.Join([]string{base, where, " ORDER BY created_at DESC"}, "")
	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, query, args...); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}
