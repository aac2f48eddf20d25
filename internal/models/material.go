package models

import "time"

// MaterialFileType classifies an upload by its file extension.
type MaterialFileType string

// FileTypeOther tags uploads whose extension is outside the allow-list.
const FileTypeOther MaterialFileType = "other"

var allowedFileTypes = map[string]struct{}{
	"pdf": {}, "doc": {}, "docx": {}, "ppt": {}, "pptx": {},
	"xls": {}, "xlsx": {}, "txt": {},
}

// ClassifyFileType maps a lowercased extension onto the allow-list,
// defaulting to "other". Purely extension based, no content sniffing.
func ClassifyFileType(ext string) MaterialFileType {
	if _, ok := allowedFileTypes[ext]; ok {
		return MaterialFileType(ext)
	}
	return FileTypeOther
}

// Material represents an uploaded study document. The binary lives on disk;
// only its relative URL is persisted.
type Material struct {
	ID          string           `db:"id" json:"id"`
	Title       string           `db:"title" json:"title"`
	Description string           `db:"description" json:"description"`
	FileURL     string           `db:"file_url" json:"fileUrl"`
	FileType    MaterialFileType `db:"file_type" json:"fileType"`
	Semester    int              `db:"semester" json:"semester"`
	SizeBytes   int64            `db:"size_bytes" json:"size"`
	UploadedBy  string           `db:"uploaded_by" json:"uploadedBy"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"-"`
}
