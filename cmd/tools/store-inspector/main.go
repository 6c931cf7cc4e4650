// cmd/tools/store-inspector/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"storefront-platform/internal/catalog"
	"storefront-platform/internal/common/config"
	"storefront-platform/internal/common/database"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/models"
	"storefront-platform/internal/store"
)

type report struct {
	Slug     string           `json:"slug"`
	Store    *models.Store    `json:"store"`
	Products []models.Product `json:"products"`
}

func main() {
	slugFlag := flag.String("slug", "", "Store slug to inspect (e.g., acme-goods)")
	configPath := flag.String("config", "", "Path to config file (defaults to configs/config.yaml)")
	timeout := flag.Duration("timeout", 10*time.Second, "Lookup timeout")
	flag.Parse()

	if *slugFlag == "" {
		fmt.Println("Error: -slug is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rep, err := inspect(ctx, pg, *slugFlag)
	if err != nil {
		fmt.Printf("Inspection failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		fmt.Printf("Error writing report: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func inspect(ctx context.Context, pg *database.PostgresClient, slug string) (*report, error) {
	repo := store.NewRepository(pg.DB)
	lookup := store.NewLookup(repo, repo, logger.NewNoOpLogger())

	st, err := lookup.Find(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("no store registered for slug %q", slug)
	}
	if err != nil {
		return nil, err
	}

	products, err := catalog.NewRepository(pg.DB).ListActiveByStore(ctx, st.OwnerID)
	if err != nil {
		return nil, err
	}
	return &report{Slug: slug, Store: st, Products: products}, nil
}
