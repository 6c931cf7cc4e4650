package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := map[ErrorCode]int{
		ErrCodeInvalidInput:  http.StatusBadRequest,
		ErrCodeInvalidEmail:  http.StatusBadRequest,
		ErrCodeSlugInvalid:   http.StatusBadRequest,
		ErrCodeUnauthorized:  http.StatusUnauthorized,
		ErrCodeForbidden:     http.StatusForbidden,
		ErrCodeOrderNotFound: http.StatusNotFound,
		ErrCodeStoreNotFound: http.StatusNotFound,
		ErrCodeSlugTaken:     http.StatusConflict,
		ErrCodeRateLimited:   http.StatusTooManyRequests,
		ErrCodeDatabaseError: http.StatusInternalServerError,
		ErrCodeInternal:      http.StatusInternalServerError,
		ErrorCode("UNKNOWN"): http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, HTTPStatus(code), string(code))
	}
}

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NewOrderNotFoundError("o1"))
	got := AsStandardError(wrapped)
	assert.Equal(t, ErrCodeOrderNotFound, got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)

	plain := AsStandardError(stderrors.New("connection refused"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "connection refused", plain.Message)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "AUTH", GetErrorCategory(ErrCodeUnauthorized))
	assert.Equal(t, "AUTH", GetErrorCategory(ErrCodeForbidden))
	assert.Equal(t, "NOT_FOUND", GetErrorCategory(ErrCodeProductNotFound))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseError))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeSlugTaken))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

type recordingLogger struct {
	warns, errs int
}

func (r *recordingLogger) Warn(string, map[string]interface{})  { r.warns++ }
func (r *recordingLogger) Error(string, map[string]interface{}) { r.errs++ }

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/onboarding/signup", nil)
	h.Respond(c, NewSlugTakenError("acme").WithMetadata("suggestions", []string{"acme-shop"}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"This store name is already taken. Please try one of the suggestions or choose a different name.","suggestions":["acme-shop"]}`, w.Body.String())
	assert.Equal(t, 1, log.warns)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/orders/update-status", nil)
	h.Respond(c, NewDatabaseError(stderrors.New("deadlock detected")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"deadlock detected"}`, w.Body.String())
	assert.Equal(t, 1, log.errs)
}
