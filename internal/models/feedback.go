package models

import "time"

// FeedbackType distinguishes general feedback from lecture doubts.
type FeedbackType string

const (
	FeedbackTypeFeedback FeedbackType = "feedback"
	FeedbackTypeDoubt    FeedbackType = "doubt"
)

// Valid returns true when the type is a supported value.
func (t FeedbackType) Valid() bool {
	return t == FeedbackTypeFeedback || t == FeedbackTypeDoubt
}

// FeedbackStatus tracks the pending -> responded lifecycle. The transition
// fires exactly once and never reverses.
type FeedbackStatus string

const (
	FeedbackStatusPending   FeedbackStatus = "pending"
	FeedbackStatusResponded FeedbackStatus = "responded"
)

// Feedback represents a submitted feedback or doubt.
type Feedback struct {
	ID          string         `db:"id" json:"id"`
	Subject     string         `db:"subject" json:"subject"`
	Message     string         `db:"message" json:"message"`
	Type        FeedbackType   `db:"type" json:"type"`
	UserID      string         `db:"user_id" json:"userId"`
	Status      FeedbackStatus `db:"status" json:"status"`
	Response    *string        `db:"response" json:"response,omitempty"`
	RespondedBy *string        `db:"responded_by" json:"respondedBy,omitempty"`
	RespondedAt *time.Time     `db:"responded_at" json:"respondedAt,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"-"`
}

// FeedbackWithUser extends a feedback row with submitter details for the
// admin listing.
type FeedbackWithUser struct {
	Feedback
	UserName  string `db:"user_name" json:"userName"`
	UserEmail string `db:"user_email" json:"userEmail"`
}
