package service

import (
	"context"
	"fmt"
	"path"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
	"github.com/pathshala-edu/pathshala-api/pkg/storage"
)

type lectureStore interface {
	Create(ctx context.Context, lecture *models.Lecture) error
	List(ctx context.Context, semester int) ([]models.Lecture, error)
}

// LectureService manages lecture video uploads and listing.
type LectureService struct {
	repo      lectureStore
	storage   fileStorage
	validator *validator.Validate
	logger    *zap.Logger
	cfg       UploadConfig
}

// NewLectureService constructs the service.
func NewLectureService(repo lectureStore, store fileStorage, validate *validator.Validate, logger *zap.Logger, cfg UploadConfig) *LectureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.PublicPrefix == "" {
		cfg.PublicPrefix = "/uploads"
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 100 * 1024 * 1024
	}
	return &LectureService{repo: repo, storage: store, validator: validate, logger: logger, cfg: cfg}
}

// Upload stores a lecture video and its record. Semester defaults to 1 when
// the form omits it.
func (s *LectureService) Upload(ctx context.Context, meta dto.UploadLectureRequest, upload FileUpload, actor *models.JWTClaims) (*models.Lecture, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(meta); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title is required")
	}
	if upload.Content == nil || upload.Filename == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "video file is required")
	}
	if upload.Size > s.cfg.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes limit", s.cfg.MaxFileSize))
	}

	semester := meta.Semester
	if semester == 0 {
		semester = 1
	}

	filename, err := storage.UniqueFilename(upload.Filename)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to name upload")
	}
	relPath := path.Join("lectures", filename)
	if _, err := s.storage.SaveStream(relPath, upload.Content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist video")
	}

	lecture := &models.Lecture{
		Title:       meta.Title,
		Description: meta.Description,
		VideoURL:    path.Join(s.cfg.PublicPrefix, "lectures", filename),
		Semester:    semester,
		SizeBytes:   upload.Size,
		UploadedBy:  actor.UserID,
	}
	if err := s.repo.Create(ctx, lecture); err != nil {
		if delErr := s.storage.Delete(relPath); delErr != nil {
			s.logger.Warn("failed to remove orphan upload", zap.String("path", relPath), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save lecture")
	}
	return lecture, nil
}

// List returns lectures, optionally filtered by semester (0 means all).
func (s *LectureService) List(ctx context.Context, semester int) ([]models.Lecture, error) {
	if semester < 0 || semester > 8 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be between 1 and 8")
	}
	lectures, err := s.repo.List(ctx, semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch lectures")
	}
	if lectures == nil {
		lectures = []models.Lecture{}
	}
	return lectures, nil
}
