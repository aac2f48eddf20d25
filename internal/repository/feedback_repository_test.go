package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathshala-edu/pathshala-api/internal/models"
)

func TestFeedbackRepositoryCreateDefaultsPending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO feedback")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	feedback := &models.Feedback{
		Subject: "Lecture pace",
		Message: "Could the recordings be slower?",
		Type:    models.FeedbackTypeFeedback,
		UserID:  "user-1",
	}
	err := repo.Create(context.Background(), feedback)
	require.NoError(t, err)
	assert.NotEmpty(t, feedback.ID)
	assert.Equal(t, models.FeedbackStatusPending, feedback.Status)
}

func TestFeedbackRepositoryRespondTransitions(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	respondedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE feedback SET response = $2, responded_by = $3, responded_at = $4, status = $5, updated_at = $4
WHERE id = $1 AND status = $6`)).
		WithArgs("fb-1", "Answered in class", "admin-1", respondedAt, models.FeedbackStatusResponded, models.FeedbackStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transitioned, err := repo.Respond(context.Background(), "fb-1", "admin-1", "Answered in class", respondedAt)
	require.NoError(t, err)
	assert.True(t, transitioned)
}

func TestFeedbackRepositoryRespondAlreadyResponded(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	respondedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE feedback")).
		WithArgs("fb-1", "Second answer", "admin-2", respondedAt, models.FeedbackStatusResponded, models.FeedbackStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	transitioned, err := repo.Respond(context.Background(), "fb-1", "admin-2", "Second answer", respondedAt)
	require.NoError(t, err)
	assert.False(t, transitioned)
}

func TestFeedbackRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestFeedbackRepositoryListAllJoinsUsers(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "subject", "message", "type", "user_id", "status",
		"response", "responded_by", "responded_at", "created_at", "updated_at",
		"user_name", "user_email",
	}).AddRow("fb-1", "Doubt", "What is a closure?", "doubt", "user-1", "pending",
		nil, nil, nil, now, now, "Ravi", "ravi@example.com")

	mock.ExpectQuery(regexp.QuoteMeta("FROM feedback f JOIN users u ON u.id = f.user_id")).
		WillReturnRows(rows)

	items, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ravi", items[0].UserName)
	assert.Equal(t, "ravi@example.com", items[0].UserEmail)
	assert.Nil(t, items[0].Response)
}
