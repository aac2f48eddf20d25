package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
	"github.com/pathshala-edu/pathshala-api/pkg/response"
)

type feedbackService interface {
	Submit(ctx context.Context, req dto.SubmitFeedbackRequest, actor *models.JWTClaims) (*models.Feedback, error)
	ListOwn(ctx context.Context, actor *models.JWTClaims) ([]models.Feedback, error)
	ListAll(ctx context.Context, actor *models.JWTClaims) ([]models.FeedbackWithUser, error)
	Respond(ctx context.Context, id string, req dto.RespondFeedbackRequest, actor *models.JWTClaims) (*models.Feedback, error)
}

// FeedbackHandler exposes the feedback and doubt endpoints.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler builds a new handler.
func NewFeedbackHandler(service feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit godoc
// @Summary Submit feedback or a doubt
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body dto.SubmitFeedbackRequest true "Feedback payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	feedback, err := h.service.Submit(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"feedback": feedback})
}

// ListOwn godoc
// @Summary List own feedback
// @Tags Feedback
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /feedback [get]
func (h *FeedbackHandler) ListOwn(c *gin.Context) {
	items, err := h.service.ListOwn(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"feedback": items})
}

// ListAll godoc
// @Summary List all feedback with submitter details
// @Tags Feedback
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /admin/feedback [get]
func (h *FeedbackHandler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"feedback": items})
}

// Respond godoc
// @Summary Respond to a feedback item
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param payload body dto.RespondFeedbackRequest true "Response payload"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /admin/feedback/{id} [patch]
func (h *FeedbackHandler) Respond(c *gin.Context) {
	var req dto.RespondFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "response is required"))
		return
	}

	feedback, err := h.service.Respond(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"feedback": feedback})
}
