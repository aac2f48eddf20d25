package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/pathshala-edu/pathshala-api/pkg/errors"
)

// JSON sends a success response. Every body carries success=true plus the
// caller's named payload keys, e.g. {"success":true,"attendance":{...}}.
func JSON(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(status, body)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusOK, payload)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusCreated, payload)
}

// Error sends a failure response converting the error to the common shape:
// {"success":false,"message":"...","code":"..."}.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{
		"success": false,
		"message": appErr.Message,
		"code":    appErr.Code,
	})
}
