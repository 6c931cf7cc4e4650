package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-platform/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repository reads and writes store_names and stores.
type Repository struct {
	db DBTX
}

func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) ResolveOwner(ctx context.Context, slug string) (string, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM store_names WHERE slug = $1`, slug,
	).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query store_names: %w", err)
	}
	return ownerID, nil
}

func (r *Repository) LoadStore(ctx context.Context, ownerID string) (*models.Store, error) {
	var s models.Store
	err := r.db.QueryRowContext(ctx, `
		SELECT owner_id, store_name, store_name_slug, store_description, store_category,
		       website, has_products, has_customized_store, created_at, updated_at
		FROM stores WHERE owner_id = $1`, ownerID,
	).Scan(
		&s.OwnerID, &s.StoreName, &s.StoreNameSlug, &s.StoreDescription, &s.StoreCategory,
		&s.Website, &s.HasProducts, &s.HasCustomizedStore, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	return &s, nil
}

// IsAvailable reports whether slug has no registry entry.
func (r *Repository) IsAvailable(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM store_names WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return !exists, nil
}

// ReserveSlug inserts the registry entry unless the slug is already taken.
// It reports whether this call created the entry.
func (r *Repository) ReserveSlug(ctx context.Context, rec models.StoreNameRecord) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO store_names (slug, owner_id, store_name, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (slug) DO NOTHING`,
		rec.Slug, rec.OwnerID, rec.StoreName,
	)
	if err != nil {
		return false, fmt.Errorf("reserve slug: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reserve slug: %w", err)
	}
	return n == 1, nil
}

// UpsertStore creates the owner's store or replaces its profile and website.
func (r *Repository) UpsertStore(ctx context.Context, s *models.Store) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores (owner_id, store_name, store_name_slug, store_description, store_category,
		                    website, has_products, has_customized_store, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE, NOW(), NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			store_name = EXCLUDED.store_name,
			store_name_slug = EXCLUDED.store_name_slug,
			website = EXCLUDED.website,
			updated_at = NOW()`,
		s.OwnerID, s.StoreName, s.StoreNameSlug, s.StoreDescription, s.StoreCategory, s.Website,
	)
	if err != nil {
		return fmt.Errorf("upsert store: %w", err)
	}
	return nil
}

// SaveWebsite replaces the website document and marks the store customized.
func (r *Repository) SaveWebsite(ctx context.Context, ownerID string, w models.Website) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stores SET website = $2, has_customized_store = TRUE, updated_at = NOW()
		WHERE owner_id = $1`, ownerID, w,
	)
	if err != nil {
		return fmt.Errorf("update website: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
