package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storefront-platform/internal/common/database"
	"storefront-platform/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSort       = errors.New("INVALID_SORT")
	ErrInvalidPriceRange = errors.New("INVALID_PRICE_RANGE")
	ErrSearchFailed      = errors.New("SEARCH_QUERY_FAILED")
)

// Sort options offered by the storefront filter bar.
const (
	SortNewest    = "newest"
	SortPopular   = "popular"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// PriceRanges are the preset filter values; any "min-max" pair is accepted.
var PriceRanges = []string{"0-10", "10-50", "50-999999"}

type SearchParams struct {
	StoreID    string
	Query      string
	Category   string
	PriceRange string
	Sort       string
	From       int
	Size       int
}

type SearchResult struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Categories []string         `json:"categories"`
}

func sortClause(sort string) ([]interface{}, error) {
	desc := map[string]interface{}{"order": "desc"}
	asc := map[string]interface{}{"order": "asc"}
	switch sort {
	case "", SortNewest:
		return []interface{}{map[string]interface{}{"createdAt": desc}}, nil
	case SortPopular:
		return []interface{}{
			map[string]interface{}{"sales": desc},
			map[string]interface{}{"createdAt": desc},
		}, nil
	case SortPriceLow:
		return []interface{}{map[string]interface{}{"price": asc}}, nil
	case SortPriceHigh:
		return []interface{}{map[string]interface{}{"price": desc}}, nil
	case SortNameAsc:
		return []interface{}{map[string]interface{}{"name.keyword": asc}}, nil
	case SortNameDesc:
		return []interface{}{map[string]interface{}{"name.keyword": desc}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSort, sort)
	}
}

// ParsePriceRange splits "min-max" into inclusive decimal bounds.
func ParsePriceRange(r string) (decimal.Decimal, decimal.Decimal, error) {
	lo, hi, ok := strings.Cut(r, "-")
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPriceRange, r)
	}
	min, err := decimal.NewFromString(lo)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPriceRange, r)
	}
	max, err := decimal.NewFromString(hi)
	if err != nil || max.LessThan(min) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPriceRange, r)
	}
	return min, max, nil
}

// BuildSearchBody builds the query for one store's active products.
func BuildSearchBody(p SearchParams) (map[string]interface{}, error) {
	filters := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"storeId": p.StoreID}},
		map[string]interface{}{"term": map[string]interface{}{"status": models.ProductStatusActive}},
	}
	if p.Category != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"category": p.Category},
		})
	}
	if p.PriceRange != "" {
		min, max, err := ParsePriceRange(p.PriceRange)
		if err != nil {
			return nil, err
		}
		minF, _ := min.Float64()
		maxF, _ := max.Float64()
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"price": map[string]interface{}{"gte": minF, "lte": maxF}},
		})
	}

	boolQuery := map[string]interface{}{"filter": filters}
	if q := strings.TrimSpace(p.Query); q != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  q,
					"fields": []string{"name^3", "description", "category^2"},
					"type":   "phrase_prefix",
				},
			},
		}
	}

	sort, err := sortClause(p.Sort)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"from":  p.From,
		"size":  p.Size,
		"query": map[string]interface{}{"bool": boolQuery},
		"sort":  sort,
		"aggs": map[string]interface{}{
			"categories": map[string]interface{}{
				"terms": map[string]interface{}{"field": "category", "size": 50},
			},
		},
	}, nil
}

type Searcher struct {
	client *elasticsearch.Client
	index  string
}

func NewSearcher(client *elasticsearch.Client, index string) *Searcher {
	return &Searcher{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Product `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations struct {
		Categories struct {
			Buckets []struct {
				Key string `json:"key"`
			} `json:"buckets"`
		} `json:"categories"`
	} `json:"aggregations"`
}

func (s *Searcher) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	body, err := BuildSearchBody(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
		s.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, database.ResponseError("search", res))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	out := &SearchResult{
		Products:   make([]models.Product, 0, len(parsed.Hits.Hits)),
		Total:      parsed.Hits.Total.Value,
		Categories: make([]string, 0, len(parsed.Aggregations.Categories.Buckets)),
	}
	for _, h := range parsed.Hits.Hits {
		out.Products = append(out.Products, h.Source)
	}
	for _, b := range parsed.Aggregations.Categories.Buckets {
		out.Categories = append(out.Categories, b.Key)
	}
	return out, nil
}
