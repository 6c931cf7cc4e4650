// internal/api/storefront/search-products/handler_test.go
package searchproducts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-platform/internal/catalog"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/models"
	"storefront-platform/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder map[string]*models.Store

func (f fakeFinder) Find(_ context.Context, slug string) (*models.Store, error) {
	if s, ok := f[slug]; ok {
		return s, nil
	}
	return nil, store.ErrNotFound
}

type fakeSearcher struct {
	got *catalog.SearchParams
}

func (f *fakeSearcher) Search(_ context.Context, p catalog.SearchParams) (*catalog.SearchResult, error) {
	f.got = &p
	if _, err := catalog.BuildSearchBody(p); err != nil {
		return nil, err
	}
	if p.Query == "explode" {
		return nil, fmt.Errorf("%w: es down", catalog.ErrSearchFailed)
	}
	return &catalog.SearchResult{
		Products:   []models.Product{{ID: "p1", Name: "Mug"}},
		Total:      1,
		Categories: []string{"Kitchen"},
	}, nil
}

func setup(t *testing.T) (*gin.Engine, *fakeSearcher) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewTestLogger(t)

	live := &models.Store{OwnerID: "owner-1", Website: models.Website{Enabled: true}}
	draft := &models.Store{OwnerID: "owner-2"}
	searcher := &fakeSearcher{}
	h := NewHandler(&Config{DefaultPageSize: 24, MaxPageSize: 100},
		fakeFinder{"corner-bakery": live, "draft": draft}, searcher, apperrors.NewErrorHandler(log), log)

	r := gin.New()
	r.GET("/store/:storeName/products", h.Handle)
	return r, searcher
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandle_ScopesToStoreOwner(t *testing.T) {
	r, searcher := setup(t)

	w := get(r, "/store/corner-bakery/products?q=mug&category=Kitchen&price=10-50&sort=price-high&size=500")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, catalog.SearchParams{
		StoreID:    "owner-1",
		Query:      "mug",
		Category:   "Kitchen",
		PriceRange: "10-50",
		Sort:       "price-high",
		From:       0,
		Size:       100,
	}, *searcher.got)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestHandle_DefaultPageSize(t *testing.T) {
	r, searcher := setup(t)

	require.Equal(t, http.StatusOK, get(r, "/store/corner-bakery/products").Code)
	assert.Equal(t, 24, searcher.got.Size)
}

func TestHandle_Errors(t *testing.T) {
	r, _ := setup(t)

	tests := []struct {
		path string
		code int
	}{
		{"/store/nobody/products", http.StatusNotFound},
		{"/store/draft/products", http.StatusNotFound},
		{"/store/corner-bakery/products?sort=random", http.StatusBadRequest},
		{"/store/corner-bakery/products?price=cheap", http.StatusBadRequest},
		{"/store/corner-bakery/products?size=abc", http.StatusBadRequest},
		{"/store/corner-bakery/products?q=explode", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.code, get(r, tt.path).Code)
		})
	}
}
