// Package promo hands out the limited early-access plan at signup.
package promo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-platform/internal/common/database"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/metrics"
	"storefront-platform/internal/models"
)

// Allocator claims spots from the singleton promo_config row.
type Allocator struct {
	db         *sql.DB
	configID   string
	totalSpots int
	logger     logger.Logger
}

func NewAllocator(db *sql.DB, configID string, totalSpots int, log logger.Logger) *Allocator {
	return &Allocator{
		db:         db,
		configID:   configID,
		totalSpots: totalSpots,
		logger:     log.WithFields(map[string]interface{}{"component": "promo-allocator", "promoId": configID}),
	}
}

// Claim takes one spot if the promo is active and not exhausted. The row is
// created on first use and locked for the read-modify-write, so concurrent
// claims serialize and used_spots never exceeds total_spots.
func (a *Allocator) Claim(ctx context.Context) (bool, error) {
	granted := false
	err := database.WithTx(ctx, a.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO promo_config (id, total_spots, used_spots, is_active, created_at)
			VALUES ($1, $2, 0, TRUE, NOW())
			ON CONFLICT (id) DO NOTHING`, a.configID, a.totalSpots,
		); err != nil {
			return fmt.Errorf("ensure promo row: %w", err)
		}

		var cfg models.PromoConfig
		err := tx.QueryRowContext(ctx, `
			SELECT id, total_spots, used_spots, is_active
			FROM promo_config WHERE id = $1 FOR UPDATE`, a.configID,
		).Scan(&cfg.ID, &cfg.TotalSpots, &cfg.UsedSpots, &cfg.IsActive)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("promo row %s vanished", a.configID)
		}
		if err != nil {
			return fmt.Errorf("lock promo row: %w", err)
		}

		if !cfg.CanClaim() {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE promo_config SET used_spots = used_spots + 1 WHERE id = $1`, a.configID,
		); err != nil {
			return fmt.Errorf("claim promo spot: %w", err)
		}
		granted = true
		return nil
	})
	if err != nil {
		metrics.PromoClaims.WithLabelValues("error").Inc()
		return false, err
	}

	result := "exhausted"
	if granted {
		result = "granted"
	}
	metrics.PromoClaims.WithLabelValues(result).Inc()
	a.logger.Debug("promo claim", map[string]interface{}{"result": result})
	return granted, nil
}
