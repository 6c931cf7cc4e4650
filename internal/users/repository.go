// Package users reads and updates merchant accounts.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-platform/internal/models"
)

var ErrNotFound = errors.New("USER_NOT_FOUND")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, store_name, store_name_slug, plan, promo_user, onboarding, created_at
		FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.StoreName, &u.StoreNameSlug, &u.Plan, &u.PromoUser, &u.Onboarding, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// CompleteOnboarding flips onboarding.completed for the user.
func (r *Repository) CompleteOnboarding(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET onboarding = jsonb_set(COALESCE(onboarding, '{}'::jsonb), '{completed}', 'true'::jsonb)
		WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
