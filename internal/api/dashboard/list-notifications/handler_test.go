// internal/api/dashboard/list-notifications/handler_test.go
package listnotifications

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-platform/internal/common/auth"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	userID     string
	unreadOnly bool
	limit      int
	err        error
}

func (f *fakeLister) ListForUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	f.userID, f.unreadOnly, f.limit = userID, unreadOnly, limit
	if f.err != nil {
		return nil, f.err
	}
	return []models.Notification{
		{ID: "n2", UserID: userID, Message: "Low stock alert: Mug - Only 2 left"},
		{ID: "n1", UserID: userID, IsRead: true},
	}, nil
}

func perform(t *testing.T, repo *fakeLister, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewTestLogger(t)
	h := NewHandler(LoadConfig(), repo, apperrors.NewErrorHandler(log), log)

	r := gin.New()
	r.GET("/api/dashboard/notifications", func(c *gin.Context) {
		c.Set(auth.UIDKey, "owner-1")
		c.Next()
	}, h.Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/notifications"+query, nil))
	return w
}

func TestHandle_ListsCallerNotifications(t *testing.T) {
	repo := &fakeLister{}

	w := perform(t, repo, "?unread=true&limit=1000")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner-1", repo.userID)
	assert.True(t, repo.unreadOnly)
	assert.Equal(t, 200, repo.limit)
	assert.Contains(t, w.Body.String(), `"unreadCount":1`)
}

func TestHandle_Defaults(t *testing.T) {
	repo := &fakeLister{}

	require.Equal(t, http.StatusOK, perform(t, repo, "").Code)
	assert.False(t, repo.unreadOnly)
	assert.Equal(t, 50, repo.limit)
}

func TestHandle_DatabaseError(t *testing.T) {
	w := perform(t, &fakeLister{err: errors.New("connection refused")}, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"connection refused"}`, w.Body.String())
}
