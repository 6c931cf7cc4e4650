package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-platform/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestBuildSearchBody_Filters(t *testing.T) {
	body, err := BuildSearchBody(SearchParams{
		StoreID:    "owner-1",
		Query:      "  mug ",
		Category:   "Kitchen",
		PriceRange: "10-50",
		Sort:       SortPriceLow,
		Size:       24,
	})
	require.NoError(t, err)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	s := string(raw)

	assert.Contains(t, s, `{"term":{"storeId":"owner-1"}}`)
	assert.Contains(t, s, `{"term":{"status":"Active"}}`)
	assert.Contains(t, s, `{"term":{"category":"Kitchen"}}`)
	assert.Contains(t, s, `"range":{"price":{"gte":10,"lte":50}}`)
	assert.Contains(t, s, `"query":"mug"`)
	assert.Contains(t, s, `"sort":[{"price":{"order":"asc"}}]`)
}

func TestBuildSearchBody_NoQueryNoMust(t *testing.T) {
	body, err := BuildSearchBody(SearchParams{StoreID: "s"})
	require.NoError(t, err)

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	_, hasMust := boolQuery["must"]
	assert.False(t, hasMust)
	assert.Equal(t, []interface{}{map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc"}}}, body["sort"])
}

func TestBuildSearchBody_Rejects(t *testing.T) {
	_, err := BuildSearchBody(SearchParams{StoreID: "s", Sort: "random"})
	assert.ErrorIs(t, err, ErrInvalidSort)

	for _, r := range []string{"cheap", "a-b", "50-10", "10"} {
		_, err := BuildSearchBody(SearchParams{StoreID: "s", PriceRange: r})
		assert.ErrorIs(t, err, ErrInvalidPriceRange, r)
	}
}

func TestParsePriceRange_Presets(t *testing.T) {
	for _, r := range PriceRanges {
		min, max, err := ParsePriceRange(r)
		require.NoError(t, err, r)
		assert.True(t, min.LessThan(max))
	}
}

func TestSearcher_Search(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = io.WriteString(w, `{
			"hits": {"total": {"value": 2}, "hits": [
				{"_source": {"id": "p1", "storeId": "owner-1", "name": "Mug", "price": "12.50", "status": "Active"}},
				{"_source": {"id": "p2", "storeId": "owner-1", "name": "Plate", "price": 8, "status": "Active"}}
			]},
			"aggregations": {"categories": {"buckets": [{"key": "Kitchen", "doc_count": 2}]}}
		}`)
	})

	res, err := NewSearcher(client, "products").Search(context.Background(), SearchParams{StoreID: "owner-1", Size: 10})
	require.NoError(t, err)

	assert.Equal(t, "/products/_search", gotPath)
	assert.EqualValues(t, 10, gotBody["size"])
	assert.EqualValues(t, 2, res.Total)
	require.Len(t, res.Products, 2)
	assert.True(t, decimal.RequireFromString("12.5").Equal(res.Products[0].Price))
	assert.Equal(t, []string{"Kitchen"}, res.Categories)
}

func TestSearcher_ErrorResponse(t *testing.T) {
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"},"status":404}`)
	})

	_, err := NewSearcher(client, "products").Search(context.Background(), SearchParams{StoreID: "s"})
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestIndexer_IndexProducts(t *testing.T) {
	var lines []string
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_bulk", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		lines = strings.Split(strings.TrimSpace(string(raw)), "\n")
		_, _ = io.WriteString(w, `{"errors": true, "items": [
			{"index": {"_id": "p1", "status": 201}},
			{"index": {"_id": "p2", "status": 400, "error": {"type": "mapper_parsing_exception", "reason": "bad price"}}}
		]}`)
	})

	products := []models.Product{
		{ID: "p1", StoreID: "s", Name: "Mug", NotifyWhenAvailable: []string{"a@b.co"}},
		{ID: "p2", StoreID: "s", Name: "Plate"},
	}
	n, err := NewIndexer(client, "products").IndexProducts(context.Background(), products)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "p2: bad price")
	assert.Equal(t, 1, n)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"_id":"p1"`)
	assert.NotContains(t, lines[1], "a@b.co")
}

func TestIndexer_EnsureIndexCreatesMissing(t *testing.T) {
	var created bool
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = true
			_, _ = io.WriteString(w, `{"acknowledged": true}`)
		}
	})

	require.NoError(t, NewIndexer(client, "products").EnsureIndex(context.Background()))
	assert.True(t, created)
}

func TestRepository_ListActiveByStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "store_id", "name", "description", "category", "price", "inventory", "quantity",
		"variant_stock", "low_stock_threshold", "variant_low_stock_threshold", "notify_when_available",
		"status", "sales", "created_at"}
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM products WHERE store_id = \\$1 AND status = \\$2").
		WithArgs("owner-1", models.ProductStatusActive).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p1", "owner-1", "Tee", "", "Apparel", "19.99", 0, 0,
				[]byte(`{"size:M":4}`), nil, nil, []byte(`{}`), "Active", 3, now))

	products, err := NewRepository(db).ListActiveByStore(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 4, products[0].VariantStock["size:M"])
	assert.Equal(t, 0, products[0].LowStockThreshold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewRepository(db).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRepository_ListPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "store_id", "name", "description", "category", "price", "inventory", "quantity",
		"variant_stock", "low_stock_threshold", "variant_low_stock_threshold", "notify_when_available",
		"status", "sales", "created_at"}
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id > \\$1 ORDER BY id LIMIT \\$2").
		WithArgs("p1", 2).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p2", "owner-1", "Mug", "", "Kitchen", "8.00", 6, 6, nil, 5, nil, []byte(`{}`), "Active", 0, now).
			AddRow("p3", "owner-2", "Cap", "", "Apparel", "12.50", 1, 1, nil, nil, nil, []byte(`{}`), "Draft", 2, now))

	products, err := NewRepository(db).ListPage(context.Background(), "p1", 2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[0].ID)
	assert.Equal(t, 5, products[0].LowStockThreshold)
	assert.Equal(t, "12.5", products[1].Price.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
