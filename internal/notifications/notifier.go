package notifications

import (
	"context"
	"fmt"

	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/metrics"
	"storefront-platform/internal/models"

	"github.com/google/uuid"
)

const productsLink = "/dashboard/products"

// Mailer delivers the optional email copy of an alert.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LowStockAlert describes one product or variant that fell into the
// low-stock band.
type LowStockAlert struct {
	StoreID     string
	ProductID   string
	ProductName string
	VariantKey  string
	Remaining   int
}

func (a LowStockAlert) Type() string {
	if a.VariantKey != "" {
		return models.NotificationLowStockVariant
	}
	return models.NotificationLowStockProduct
}

func (a LowStockAlert) Message() string {
	if a.VariantKey != "" {
		return fmt.Sprintf("Low stock alert: %s (%s) - Only %d left", a.ProductName, a.VariantKey, a.Remaining)
	}
	return fmt.Sprintf("Low stock alert: %s - Only %d left", a.ProductName, a.Remaining)
}

type Notifier struct {
	repo   *Repository
	mailer Mailer
	logger logger.Logger
}

// NewNotifier builds a notifier. mailer may be nil to skip email.
func NewNotifier(repo *Repository, mailer Mailer, log logger.Logger) *Notifier {
	return &Notifier{
		repo:   repo,
		mailer: mailer,
		logger: log.WithFields(map[string]interface{}{"component": "low-stock-notifier"}),
	}
}

// NotifyLowStock records a dashboard alert unless an unread one of the same
// type already exists for the product. It reports whether an alert was created.
// Email delivery failures are logged and never returned.
func (n *Notifier) NotifyLowStock(ctx context.Context, alert LowStockAlert) (bool, error) {
	typ := alert.Type()

	exists, err := n.repo.HasUnread(ctx, alert.StoreID, alert.ProductID, typ)
	if err != nil {
		metrics.LowStockNotifications.WithLabelValues(typ, "error").Inc()
		return false, err
	}
	if exists {
		metrics.LowStockNotifications.WithLabelValues(typ, "duplicate").Inc()
		return false, nil
	}

	note := &models.Notification{
		ID:             uuid.New().String(),
		UserID:         alert.StoreID,
		StoreID:        alert.StoreID,
		Type:           typ,
		ProductID:      alert.ProductID,
		ProductName:    alert.ProductName,
		VariantKey:     alert.VariantKey,
		RemainingStock: alert.Remaining,
		Message:        alert.Message(),
		Link:           productsLink,
	}
	if err := n.repo.Insert(ctx, note); err != nil {
		metrics.LowStockNotifications.WithLabelValues(typ, "error").Inc()
		return false, err
	}
	metrics.LowStockNotifications.WithLabelValues(typ, "created").Inc()

	n.email(ctx, alert.StoreID, note)
	return true, nil
}

func (n *Notifier) email(ctx context.Context, userID string, note *models.Notification) {
	if n.mailer == nil {
		return
	}
	to, err := n.repo.OwnerEmail(ctx, userID)
	if err != nil || to == "" {
		if err != nil {
			n.logger.Warn("owner email lookup failed", map[string]interface{}{"userId": userID, "error": err})
		}
		return
	}
	if err := n.mailer.Send(ctx, to, "Low stock: "+note.ProductName, note.Message); err != nil {
		n.logger.Warn("low stock email failed", map[string]interface{}{
			"userId":    userID,
			"productId": note.ProductID,
			"error":     err,
		})
	}
}
