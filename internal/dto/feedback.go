package dto

import "github.com/pathshala-edu/pathshala-api/internal/models"

// SubmitFeedbackRequest is the payload for creating a feedback or doubt.
type SubmitFeedbackRequest struct {
	Subject string              `json:"subject" validate:"required"`
	Message string              `json:"message" validate:"required"`
	Type    models.FeedbackType `json:"type" validate:"required"`
}

// RespondFeedbackRequest carries the admin response to a feedback item.
type RespondFeedbackRequest struct {
	Response string `json:"response" validate:"required"`
}
