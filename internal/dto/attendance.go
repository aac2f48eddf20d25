package dto

import "github.com/pathshala-edu/pathshala-api/internal/models"

// MarkAttendanceRequest upserts the attendance sheet for a date.
// When Students is nil the current student roster is merged instead;
// an explicitly empty list is stored verbatim as zero attendees.
type MarkAttendanceRequest struct {
	Date     string                      `json:"date" validate:"required"`
	Students *[]models.StudentAttendance `json:"students"`
}
