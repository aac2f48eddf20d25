package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/middleware"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
)

type feedbackServiceMock struct {
	submitResp  *models.Feedback
	submitErr   error
	ownResp     []models.Feedback
	allResp     []models.FeedbackWithUser
	listErr     error
	respondResp *models.Feedback
	respondErr  error
	lastID      string
	respondReq  dto.RespondFeedbackRequest
}

func (m *feedbackServiceMock) Submit(ctx context.Context, req dto.SubmitFeedbackRequest, actor *models.JWTClaims) (*models.Feedback, error) {
	return m.submitResp, m.submitErr
}

func (m *feedbackServiceMock) ListOwn(ctx context.Context, actor *models.JWTClaims) ([]models.Feedback, error) {
	return m.ownResp, m.listErr
}

func (m *feedbackServiceMock) ListAll(ctx context.Context, actor *models.JWTClaims) ([]models.FeedbackWithUser, error) {
	return m.allResp, m.listErr
}

func (m *feedbackServiceMock) Respond(ctx context.Context, id string, req dto.RespondFeedbackRequest, actor *models.JWTClaims) (*models.Feedback, error) {
	m.lastID = id
	m.respondReq = req
	return m.respondResp, m.respondErr
}

func TestFeedbackHandlerSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &feedbackServiceMock{
		submitResp: &models.Feedback{ID: "fb-1", Status: models.FeedbackStatusPending},
	}
	h := NewFeedbackHandler(mockSvc)

	payload, _ := json.Marshal(dto.SubmitFeedbackRequest{
		Subject: "Pace",
		Message: "Too fast",
		Type:    models.FeedbackTypeDoubt,
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/feedback", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleUser})

	h.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["feedback"])
}

func TestFeedbackHandlerSubmitInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewFeedbackHandler(&feedbackServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/feedback", bytes.NewBufferString(`{"subject":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestFeedbackHandlerRespondConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &feedbackServiceMock{
		respondErr: appErrors.Clone(appErrors.ErrConflict, "feedback has already been responded to"),
	}
	h := NewFeedbackHandler(mockSvc)

	payload, _ := json.Marshal(dto.RespondFeedbackRequest{Response: "Second answer"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/api/admin/feedback/fb-1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "fb-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	h.Respond(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "fb-1", mockSvc.lastID)
}

func TestFeedbackHandlerRespondNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &feedbackServiceMock{
		respondErr: appErrors.Clone(appErrors.ErrNotFound, "feedback not found"),
	}
	h := NewFeedbackHandler(mockSvc)

	payload, _ := json.Marshal(dto.RespondFeedbackRequest{Response: "Hello"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/api/admin/feedback/missing", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	h.Respond(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedbackHandlerListAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &feedbackServiceMock{
		allResp: []models.FeedbackWithUser{{
			Feedback: models.Feedback{ID: "fb-1"},
			UserName: "Ravi",
		}},
	}
	h := NewFeedbackHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/admin/feedback", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	h.ListAll(c)
	require.Equal(t, http.StatusOK, w.Code)
}
