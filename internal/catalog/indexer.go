package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"storefront-platform/internal/common/database"
	"storefront-platform/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

const productMapping = `{
	"mappings": {
		"properties": {
			"id":          {"type": "keyword"},
			"storeId":     {"type": "keyword"},
			"status":      {"type": "keyword"},
			"category":    {"type": "keyword"},
			"name":        {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"description": {"type": "text"},
			"price":       {"type": "scaled_float", "scaling_factor": 100},
			"sales":       {"type": "integer"},
			"createdAt":   {"type": "date"}
		}
	}
}`

// Indexer writes product documents into the search index.
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexer(client *elasticsearch.Client, index string) *Indexer {
	return &Indexer{client: client, index: index}
}

// EnsureIndex creates the index with the product mapping if it is missing.
func (i *Indexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.index}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = i.client.Indices.Create(i.index,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(strings.NewReader(productMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return database.ResponseError("create index", res)
	}
	return nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

// IndexProducts bulk-indexes products by id. It returns the number of
// documents accepted; per-item failures are summarized in the error.
func (i *Indexer) IndexProducts(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range products {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": i.index, "_id": p.ID}}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		doc := p
		doc.NotifyWhenAvailable = nil
		if err := enc.Encode(doc); err != nil {
			return 0, fmt.Errorf("encode product %s: %w", p.ID, err)
		}
	}

	res, err := i.client.Bulk(&buf, i.client.Bulk.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, database.ResponseError("bulk index", res)
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}

	ok := 0
	var failures []string
	for _, item := range parsed.Items {
		for _, r := range item {
			if r.Error != nil {
				failures = append(failures, fmt.Sprintf("%s: %s", r.ID, r.Error.Reason))
				continue
			}
			ok++
		}
	}
	if len(failures) > 0 {
		return ok, fmt.Errorf("bulk index: %d failed: %s", len(failures), strings.Join(failures, "; "))
	}
	return ok, nil
}
