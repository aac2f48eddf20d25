package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
)

type feedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	ListByUser(ctx context.Context, userID string) ([]models.Feedback, error)
	ListAll(ctx context.Context) ([]models.FeedbackWithUser, error)
	Respond(ctx context.Context, id, responderID, responseText string, respondedAt time.Time) (bool, error)
}

// FeedbackService implements feedback submission and the one-shot
// pending -> responded workflow.
type FeedbackService struct {
	repo      feedbackStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs the service.
func NewFeedbackService(repo feedbackStore, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{repo: repo, validator: validate, logger: logger}
}

// Submit creates a pending feedback item for the authenticated user.
func (s *FeedbackService) Submit(ctx context.Context, req dto.SubmitFeedbackRequest, actor *models.JWTClaims) (*models.Feedback, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "subject, message, and type are required")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "type must be either 'feedback' or 'doubt'")
	}

	feedback := &models.Feedback{
		Subject: req.Subject,
		Message: req.Message,
		Type:    req.Type,
		UserID:  actor.UserID,
		Status:  models.FeedbackStatusPending,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit feedback")
	}
	return feedback, nil
}

// ListOwn returns the actor's submitted items newest-first.
func (s *FeedbackService) ListOwn(ctx context.Context, actor *models.JWTClaims) ([]models.Feedback, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	items, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch feedback")
	}
	if items == nil {
		items = []models.Feedback{}
	}
	return items, nil
}

// ListAll returns every item with submitter details. Admin only.
func (s *FeedbackService) ListAll(ctx context.Context, actor *models.JWTClaims) ([]models.FeedbackWithUser, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch feedback")
	}
	if items == nil {
		items = []models.FeedbackWithUser{}
	}
	return items, nil
}

// Respond fires the pending -> responded transition exactly once. An item
// that was already responded to keeps its first response and the caller
// gets a conflict.
func (s *FeedbackService) Respond(ctx context.Context, id string, req dto.RespondFeedbackRequest, actor *models.JWTClaims) (*models.Feedback, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "response is required")
	}

	transitioned, err := s.repo.Respond(ctx, id, actor.UserID, req.Response, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to respond to feedback")
	}
	if !transitioned {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "feedback not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch feedback")
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, "feedback has already been responded to")
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch feedback")
	}
	return updated, nil
}
