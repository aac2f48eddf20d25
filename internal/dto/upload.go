package dto

// UploadMaterialRequest carries the multipart form fields for a study
// material upload. The file itself arrives separately.
type UploadMaterialRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	Semester    int    `form:"semester" validate:"required,min=1,max=8"`
}

// UploadLectureRequest carries the multipart form fields for a lecture
// video upload. Semester is optional and defaults to 1.
type UploadLectureRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	Semester    int    `form:"semester" validate:"omitempty,min=1,max=8"`
}

// SemesterFilter scopes lecture and material listings.
type SemesterFilter struct {
	Semester int
}
