package models

import "time"

// Lecture represents an uploaded lecture video.
type Lecture struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	VideoURL    string    `db:"video_url" json:"videoUrl"`
	Semester    int       `db:"semester" json:"semester"`
	SizeBytes   int64     `db:"size_bytes" json:"size"`
	UploadedBy  string    `db:"uploaded_by" json:"uploadedBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}
