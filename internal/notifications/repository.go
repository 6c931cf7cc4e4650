// Package notifications persists merchant dashboard alerts and raises
// low-stock alerts after fulfillment.
package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-platform/internal/models"
)

var ErrNotFound = errors.New("NOTIFICATION_NOT_FOUND")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// HasUnread reports whether an unread alert of type already exists for the
// product. This is the only deduplication; there is no unique constraint.
func (r *Repository) HasUnread(ctx context.Context, userID, productID, typ string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND product_id = $2 AND type = $3 AND is_read = FALSE
		)`, userID, productID, typ,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query notifications: %w", err)
	}
	return exists, nil
}

func (r *Repository) Insert(ctx context.Context, n *models.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, store_id, type, product_id, product_name,
		                           variant_key, remaining_stock, message, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, NOW())`,
		n.ID, n.UserID, n.StoreID, n.Type, n.ProductID, n.ProductName,
		sql.NullString{String: n.VariantKey, Valid: n.VariantKey != ""},
		n.RemainingStock, n.Message, n.Link,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListForUser returns the newest notifications first.
func (r *Repository) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, store_id, type, product_id, product_name, COALESCE(variant_key, ''),
		       remaining_stock, message, link, is_read, created_at
		FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.StoreID, &n.Type, &n.ProductID, &n.ProductName,
			&n.VariantKey, &n.RemainingStock, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags the notification as read. Notifications owned by another
// user are reported as not found.
func (r *Repository) MarkRead(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// OwnerEmail returns the merchant's email address, or "" if unknown.
func (r *Repository) OwnerEmail(ctx context.Context, userID string) (string, error) {
	var email sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query user email: %w", err)
	}
	return email.String, nil
}
