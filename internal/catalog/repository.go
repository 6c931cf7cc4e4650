// Package catalog reads products from Postgres and serves storefront search
// from the Elasticsearch product index.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-platform/internal/models"
)

var ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")

// ProductColumns is the select list matched by ScanProduct.
const ProductColumns = `id, store_id, name, description, category, price, inventory, quantity,
	variant_stock, low_stock_threshold, variant_low_stock_threshold, notify_when_available,
	status, sales, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanProduct reads one row selected with ProductColumns.
func ScanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var lowStock sql.NullInt64
	if err := row.Scan(
		&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Inventory, &p.Quantity,
		&p.VariantStock, &lowStock, &p.VariantLowStockThreshold, &p.NotifyWhenAvailable,
		&p.Status, &p.Sales, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.LowStockThreshold = int(lowStock.Int64)
	return &p, nil
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := ScanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+ProductColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

// ListActiveByStore returns the products a storefront shows.
func (r *Repository) ListActiveByStore(ctx context.Context, storeID string) ([]models.Product, error) {
	return r.list(ctx,
		`SELECT `+ProductColumns+` FROM products WHERE store_id = $1 AND status = $2 ORDER BY created_at DESC`,
		storeID, models.ProductStatusActive)
}

// ListPage returns up to limit products with id greater than afterID, in id
// order, for batch jobs.
func (r *Repository) ListPage(ctx context.Context, afterID string, limit int) ([]models.Product, error) {
	return r.list(ctx,
		`SELECT `+ProductColumns+` FROM products WHERE id > $1 ORDER BY id LIMIT $2`,
		afterID, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		p, err := ScanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
