package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	"github.com/pathshala-edu/pathshala-api/internal/service"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
	"github.com/pathshala-edu/pathshala-api/pkg/response"
)

type materialService interface {
	Upload(ctx context.Context, meta dto.UploadMaterialRequest, upload service.FileUpload, actor *models.JWTClaims) (*models.Material, error)
	List(ctx context.Context, semester int) ([]models.Material, error)
}

// MaterialHandler exposes study material endpoints.
type MaterialHandler struct {
	service materialService
}

// NewMaterialHandler builds a new handler.
func NewMaterialHandler(service materialService) *MaterialHandler {
	return &MaterialHandler{service: service}
}

// Upload godoc
// @Summary Upload a study material
// @Tags Materials
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param semester formData int true "Semester (1-8)"
// @Param file formData file true "Material file"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /material [post]
func (h *MaterialHandler) Upload(c *gin.Context) {
	var meta dto.UploadMaterialRequest
	if err := c.ShouldBind(&meta); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material form"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close()

	material, err := h.service.Upload(c.Request.Context(), meta, service.FileUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  file,
	}, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"material": material})
}

// List godoc
// @Summary List study materials
// @Tags Materials
// @Produce json
// @Param semester query int false "Semester filter (1-8)"
// @Success 200 {object} map[string]interface{}
// @Router /material [get]
func (h *MaterialHandler) List(c *gin.Context) {
	semester, err := semesterQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	materials, err := h.service.List(c.Request.Context(), semester)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"materials": materials})
}

func semesterQuery(c *gin.Context) (int, error) {
	raw := c.Query("semester")
	if raw == "" {
		return 0, nil
	}
	semester, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "semester must be a number")
	}
	return semester, nil
}
