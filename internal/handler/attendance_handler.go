package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathshala-edu/pathshala-api/internal/dto"
	"github.com/pathshala-edu/pathshala-api/internal/models"
	"github.com/pathshala-edu/pathshala-api/internal/service"
	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
	"github.com/pathshala-edu/pathshala-api/pkg/response"
)

type attendanceService interface {
	Get(ctx context.Context, dateStr string) (*models.AttendanceRecord, error)
	Mark(ctx context.Context, req dto.MarkAttendanceRequest) (*models.AttendanceRecord, bool, error)
	Export(ctx context.Context, dateStr, format string) (*service.ExportResult, error)
}

// AttendanceHandler exposes the daily attendance endpoints.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler builds a new handler.
func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// Get godoc
// @Summary Get attendance for a date
// @Tags Attendance
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /attendance [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"attendance": record})
}

// Mark godoc
// @Summary Mark attendance for a date
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	record, created, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, gin.H{"attendance": record})
}

// Export godoc
// @Summary Download the day sheet
// @Tags Attendance
// @Produce application/pdf
// @Produce text/csv
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), c.Query("date"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
