// cmd/tools/catalog-reindex/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"storefront-platform/internal/catalog"
	"storefront-platform/internal/common/config"
	"storefront-platform/internal/common/database"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults to configs/config.yaml)")
	batchSize := flag.Int("batch", 500, "Products per bulk request")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall reindex timeout")
	flag.Parse()

	if *batchSize <= 0 {
		fmt.Println("Error: -batch must be positive.")
		os.Exit(1)
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fmt.Printf("Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		fmt.Printf("Error creating elasticsearch client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	indexer := catalog.NewIndexer(es.Client, cfg.Database.Elasticsearch.ProductIndex)
	if err := indexer.EnsureIndex(ctx); err != nil {
		fmt.Printf("Error preparing index: %v\n", err)
		os.Exit(1)
	}

	total, err := reindex(ctx, catalog.NewRepository(pg.DB), indexer, *batchSize)
	if err != nil {
		fmt.Printf("Reindex failed after %d products: %v\n", total, err)
		os.Exit(1)
	}
	fmt.Printf("Indexed %d products into %s\n", total, cfg.Database.Elasticsearch.ProductIndex)
}

// reindex pages through products in id order so a partial run can be resumed.
func reindex(ctx context.Context, repo *catalog.Repository, indexer *catalog.Indexer, batch int) (int, error) {
	total := 0
	after := ""
	for {
		page, err := repo.ListPage(ctx, after, batch)
		if err != nil {
			return total, err
		}
		if len(page) == 0 {
			return total, nil
		}

		n, err := indexer.IndexProducts(ctx, page)
		total += n
		if err != nil {
			return total, err
		}
		fmt.Printf("  batch ending at %s: %d products\n", page[len(page)-1].ID, n)

		if len(page) < batch {
			return total, nil
		}
		after = page[len(page)-1].ID
	}
}
