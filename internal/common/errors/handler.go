// internal/common/errors/handler.go
package errors

import (
	"github.com/gin-gonic/gin"
)

// ErrorHandler writes standardized error responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond normalizes err, logs it and aborts the request with {"error": message}.
// Extra response fields are taken from the error metadata.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	stdErr := AsStandardError(err)
	h.logError(c, stdErr)

	body := gin.H{"error": stdErr.Message}
	for k, v := range stdErr.Metadata {
		body[k] = v
	}
	c.AbortWithStatusJSON(stdErr.Status, body)
}

func (h *ErrorHandler) logError(c *gin.Context, stdErr *StandardError) {
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"status":        stdErr.Status,
		"errorCategory": GetErrorCategory(stdErr.Code),
		"method":        c.Request.Method,
		"path":          c.Request.URL.Path,
	}
	if IsClientError(stdErr.Code) {
		h.logger.Warn("request rejected", fields)
		return
	}
	h.logger.Error("request failed", fields)
}
