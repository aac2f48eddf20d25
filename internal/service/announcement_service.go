package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
)

const announcementCacheKey = "announcements:list"

type announcementStore interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	List(ctx context.Context) ([]models.Announcement, error)
}

// AnnouncementService manages announcement creation and listing.
type AnnouncementService struct {
	repo      announcementStore
	cache     *CacheService
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo announcementStore, cache *CacheService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AnnouncementService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// Create stores a new announcement attributed to the authenticated actor.
func (s *AnnouncementService) Create(ctx context.Context, req dto.CreateAnnouncementRequest, actor *models.JWTClaims) (*models.Announcement, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and description are required")
	}

	announcement := &models.Announcement{
		Title:       req.Title,
		Description: req.Description,
		Important:   req.Important,
		CreatedBy:   actor.UserID,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create announcement")
	}

	s.cache.Invalidate(ctx, announcementCacheKey)

	return announcement, nil
}

// List returns all announcements newest-first, served from cache when warm.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	var cached []models.Announcement
	if s.cache.GetJSON(ctx, announcementCacheKey, &cached) {
		return cached, nil
	}

	announcements, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch announcements")
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}

	s.cache.SetJSON(ctx, announcementCacheKey, announcements, s.cacheTTL)

	return announcements, nil
}
