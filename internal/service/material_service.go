package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
	"github.com/pathshala-edu/pathshala-api/pkg/storage"
)

// FileUpload carries upload metadata and the stream reader.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type fileStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

type materialStore interface {
	Create(ctx context.Context, material *models.Material) error
	List(ctx context.Context, semester int) ([]models.Material, error)
}

// UploadConfig holds shared upload tuning for materials and lectures.
type UploadConfig struct {
	PublicPrefix string
	MaxFileSize  int64
}

// MaterialService manages study material uploads and listing.
type MaterialService struct {
	repo      materialStore
	storage   fileStorage
	validator *validator.Validate
	logger    *zap.Logger
	cfg       UploadConfig
}

// NewMaterialService constructs the service.
func NewMaterialService(repo materialStore, store fileStorage, validate *validator.Validate, logger *zap.Logger, cfg UploadConfig) *MaterialService {
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
	return &MaterialService{repo: repo, storage: store, validator: validate, logger: logger, cfg: cfg}
}

// Upload validates the form metadata, writes the binary under a randomized
// filename, and stores the record. Validation happens before the file is
// written so a rejected request leaves nothing on disk. A failed insert
// after a successful write removes the orphan file best-effort.
func (s *MaterialService) Upload(ctx context.Context, meta dto.UploadMaterialRequest, upload FileUpload, actor *models.JWTClaims) (*models.Material, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(meta); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and semester (1-8) are required")
	}
	if upload.Content == nil || upload.Filename == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if upload.Size > s.cfg.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes limit", s.cfg.MaxFileSize))
	}

	filename, err := storage.UniqueFilename(upload.Filename)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to name upload")
	}
	relPath := path.Join("materials", filename)
	if _, err := s.storage.SaveStream(relPath, upload.Content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist file")
	}

	material := &models.Material{
		Title:       meta.Title,
		Description: meta.Description,
		FileURL:     path.Join(s.cfg.PublicPrefix, "materials", filename),
		FileType:    models.ClassifyFileType(storage.FileExtension(upload.Filename)),
		Semester:    meta.Semester,
		SizeBytes:   upload.Size,
		UploadedBy:  actor.UserID,
	}
	if err := s.repo.Create(ctx, material); err != nil {
		if delErr := s.storage.Delete(relPath); delErr != nil {
			s.logger.Warn("failed to remove orphan upload", zap.String("path", relPath), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save material")
	}
	return material, nil
}

// List returns materials, optionally filtered by semester (0 means all).
func (s *MaterialService) List(ctx context.Context, semester int) ([]models.Material, error) {
	if semester < 0 || semester > 8 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be between 1 and 8")
	}
	materials, err := s.repo.List(ctx, semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch materials")
	}
	if materials == nil {
		materials = []models.Material{}
	}
	return materials, nil
}
