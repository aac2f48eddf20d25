package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	"github.com/pathshala-edu/pathshala-api/internal/service"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
	"github.com/pathshala-edu/pathshala-api/pkg/response"
)

type lectureService interface {
	Upload(ctx context.Context, meta dto.UploadLectureRequest, upload service.FileUpload, actor *models.JWTClaims) (*models.Lecture, error)
	List(ctx context.Context, semester int) ([]models.Lecture, error)
}

// LectureHandler exposes lecture video endpoints.
type LectureHandler struct {
	service lectureService
}

// NewLectureHandler builds a new handler.
func NewLectureHandler(service lectureService) *LectureHandler {
	return &LectureHandler{service: service}
}

// Upload godoc
// @Summary Upload a lecture video
// @Tags Lectures
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param semester formData int false "Semester (defaults to 1)"
// @Param video formData file true "Video file"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /lectures/upload [post]
func (h *LectureHandler) Upload(c *gin.Context) {
	var meta dto.UploadLectureRequest
	if err := c.ShouldBind(&meta); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lecture form"))
		return
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "video file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close()

	lecture, err := h.service.Upload(c.Request.Context(), meta, service.FileUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  file,
	}, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"lecture": lecture})
}

// List godoc
// @Summary List lectures
// @Tags Lectures
// @Produce json
// @Param semester query int false "Semester filter (1-8)"
// @Success 200 {object} map[string]interface{}
// @Router /lectures [get]
func (h *LectureHandler) List(c *gin.Context) {
	semester, err := semesterQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	lectures, err := h.service.List(c.Request.Context(), semester)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"lectures": lectures})
}
