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

// FeedbackRepository provides persistence for feedback and doubts.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates the repository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a new feedback item in pending state.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = now
	}
	feedback.UpdatedAt = now
	if feedback.Status == "" {
		feedback.Status = models.FeedbackStatusPending
	}
	const query = `INSERT INTO feedback (id, subject, message, type, user_id, status, created_at, updated_at)
VALUES (:id, :subject, :message, :type, :user_id, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, feedback); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// GetByID returns a feedback item by identifier.
func (r *FeedbackRepository) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	const query = `SELECT id, subject, message, type, user_id, status, response, responded_by, responded_at, created_at, updated_at
FROM feedback WHERE id = $1 LIMIT 1`
	var feedback models.Feedback
	if err := r.db.GetContext(ctx, &feedback, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get feedback by id: %w", err)
	}
	return &feedback, nil
}

// ListByUser returns the submitter's own items newest-first.
func (r *FeedbackRepository) ListByUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	const query = `SELECT id, subject, message, type, user_id, status, response, responded_by, responded_at, created_at, updated_at
FROM feedback WHERE user_id = $1 ORDER BY created_at DESC`
	var items []models.Feedback
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list feedback by user: %w", err)
	}
	return items, nil
}

// ListAll returns every item with submitter name and email, newest-first.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]models.FeedbackWithUser, error) {
	const query = `SELECT f.id, f.subject, f.message, f.type, f.user_id, f.status, f.response, f.responded_by, f.responded_at, f.created_at, f.updated_at,
u.name AS user_name, u.email AS user_email
FROM feedback f JOIN users u ON u.id = f.user_id
ORDER BY f.created_at DESC`
	var items []models.FeedbackWithUser
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list all feedback: %w", err)
	}
	return items, nil
}

// Respond sets response text, responder and timestamp together with the
// pending -> responded transition in one conditional update. Returns false
// when the row was not in pending state (or does not exist).
func (r *FeedbackRepository) Respond(ctx context.Context, id, responderID, responseText string, respondedAt time.Time) (bool, error) {
	const query = `UPDATE feedback SET response = $2, responded_by = $3, responded_at = $4, status = $5, updated_at = $4
WHERE id = $1 AND status = $6`
	result, err := r.db.ExecContext(ctx, query, id, responseText, responderID, respondedAt, models.FeedbackStatusResponded, models.FeedbackStatusPending)
	if err != nil {
		return false, fmt.Errorf("respond to feedback: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("respond to feedback: rows affected: %w", err)
	}
	return affected == 1, nil
}
