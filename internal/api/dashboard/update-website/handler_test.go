// internal/api/dashboard/update-website/handler_test.go
package updatewebsite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-platform/internal/common/auth"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/validation"
	"storefront-platform/internal/models"
	"storefront-platform/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStores struct {
	stores map[string]*models.Store
	saved  *models.Website
}

func (m *memStores) LoadStore(_ context.Context, ownerID string) (*models.Store, error) {
	if s, ok := m.stores[ownerID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (m *memStores) SaveWebsite(_ context.Context, _ string, w models.Website) error {
	m.saved = &w
	return nil
}

func perform(t *testing.T, stores *memStores, uid, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewTestLogger(t)
	h := NewHandler(LoadConfig(), stores, validation.MustNewValidator(validation.RequestSchemas),
		apperrors.NewErrorHandler(log), log)

	r := gin.New()
	r.PATCH("/api/dashboard/website", func(c *gin.Context) {
		c.Set(auth.UIDKey, uid)
		c.Next()
	}, h.Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/dashboard/website", strings.NewReader(body)))
	return w
}

func newStores() *memStores {
	return &memStores{stores: map[string]*models.Store{
		"owner-1": {OwnerID: "owner-1", Website: models.DefaultWebsite("Corner Bakery", "https://cdn/logo.svg")},
	}}
}

func TestHandle_PartialUpdate(t *testing.T) {
	stores := newStores()

	w := perform(t, stores, "owner-1", `{"enabled":true,"hero":{"title":"Fresh bread daily","alignment":"center"}}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, stores.saved)
	assert.True(t, stores.saved.Enabled)
	assert.Equal(t, "Fresh bread daily", stores.saved.Hero.Title)
	assert.Equal(t, "center", stores.saved.Hero.Alignment)
	assert.Equal(t, "Shop Now", stores.saved.Hero.CTAText)
	assert.Equal(t, "classic", stores.saved.TemplateID)
	assert.Equal(t, "https://cdn/logo.svg", stores.saved.Logo)
}

func TestHandle_RejectsInvalid(t *testing.T) {
	stores := newStores()

	assert.Equal(t, http.StatusBadRequest, perform(t, stores, "owner-1", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, perform(t, stores, "owner-1", `{"hero":{"alignment":"diagonal"}}`).Code)
	assert.Nil(t, stores.saved)
}

func TestHandle_NoStore(t *testing.T) {
	w := perform(t, newStores(), "owner-9", `{"enabled":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
