package ui

import (
	"fmt"
	"log"
	"mime"
	"net/http"

	"eantienda/app"
	"eantienda/internal/errors"

	"github.com/gin-gonic/gin"
)

// statusFor maps an application error code to an HTTP status
func statusFor(code string) int {
	switch code {
	case errors.CodeValidationError, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeRangeExhausted, errors.CodeGenerationExhausted:
		return http.StatusConflict
	case errors.CodeRenderFailure:
		return http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error", "code"}; internal failures hide their cause
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[Server] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// sendFile returns a generated document as a download
func sendFile(c *gin.Context, file *app.File) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Name})
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=%q", "download")
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
