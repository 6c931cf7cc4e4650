// internal/api/orders/update-status/handler.go
package updatestatus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-platform/internal/catalog"
	"storefront-platform/internal/common/auth"
	"storefront-platform/internal/common/database"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/metrics"
	"storefront-platform/internal/common/observability"
	"storefront-platform/internal/common/validation"
	"storefront-platform/internal/inventory"
	"storefront-platform/internal/models"
	"storefront-platform/internal/notifications"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	Endpoint = "update-order-status"

	EventOrderStatusChanged = "order.status_changed"
)

var (
	ErrOrderNotFound = errors.New("ORDER_NOT_FOUND")
	ErrForbidden     = errors.New("FORBIDDEN")
	ErrUpdateFailed  = errors.New("ORDER_UPDATE_FAILED")
)

type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alert notifications.LowStockAlert) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Dependencies are the collaborators wired in from main. Events, Metrics and
// Tracer may be nil.
type Dependencies struct {
	DB        *sql.DB
	Validator *validation.Validator
	Notifier  LowStockNotifier
	Events    EventPublisher
	Metrics   *observability.Observability
	Tracer    trace.Tracer
	Responder *apperrors.ErrorHandler
}

type Handler struct {
	config *Config
	deps   Dependencies
	active inventory.ActiveStatuses
	logger logger.Logger
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		deps:   deps,
		active: inventory.NewActiveStatuses(config.ActiveStatuses...),
		logger: log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.deps.Responder.Respond(c, apperrors.NewInvalidInputError("Order ID and new status are required"))
		return
	}
	if res := h.deps.Validator.ValidateBytes(validation.SchemaOrderStatusUpdate, body); !res.Valid {
		h.logger.Debug("invalid request body", map[string]interface{}{"errors": res.GetErrorMessages()})
		h.deps.Responder.Respond(c, apperrors.NewInvalidInputError("Order ID and new status are required"))
		return
	}

	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		h.deps.Responder.Respond(c, apperrors.NewInvalidInputError("Order ID and new status are required"))
		return
	}
	input.CallerUID = auth.CallerUID(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.deps.Responder.Respond(c, h.toStandardError(err, &input))
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) toStandardError(err error, input *Input) *apperrors.StandardError {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return apperrors.NewOrderNotFoundError(input.OrderID)
	case errors.Is(err, ErrForbidden):
		return apperrors.NewForbiddenError("Unauthorized to update this order")
	default:
		return apperrors.NewInternalError(err)
	}
}

// Execute runs the status update outside of HTTP.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// fulfillment is what the transaction hands to the post-commit side effects.
type fulfillment struct {
	order    models.Order
	reduced  bool
	alerts   []notifications.LowStockAlert
	previous string
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()
	ctx, span := h.tracer().Start(ctx, "orders.update_status", trace.WithAttributes(
		attribute.String("order.id", input.OrderID),
		attribute.String("order.new_status", input.NewStatus),
	))
	defer span.End()

	var f fulfillment
	err := database.WithTx(ctx, h.deps.DB, func(tx *sql.Tx) error {
		var err error
		f, err = h.applyInTx(ctx, tx, input)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.deps.Metrics.RecordStatusUpdate(ctx, time.Since(start), outcomeOf(err), false)
		return nil, err
	}

	h.deps.Metrics.RecordStatusUpdate(ctx, time.Since(start), "updated", f.reduced)
	span.SetAttributes(
		attribute.Bool("order.inventory_reduced", f.reduced),
		attribute.Int("order.low_stock_alerts", len(f.alerts)),
	)

	h.notifyLowStock(ctx, f.alerts)
	h.publish(ctx, f, input.NewStatus)

	h.logger.Info("order status updated", map[string]interface{}{
		"orderId":          input.OrderID,
		"storeId":          f.order.StoreID,
		"previousStatus":   f.previous,
		"newStatus":        input.NewStatus,
		"inventoryReduced": f.reduced,
	})

	return &Output{Success: true, Message: "Order status updated successfully"}, nil
}

func (h *Handler) applyInTx(ctx context.Context, tx *sql.Tx, input *Input) (fulfillment, error) {
	var f fulfillment

	err := tx.QueryRowContext(ctx, `
		SELECT id, store_id, items, status
		FROM orders WHERE id = $1 FOR UPDATE`, input.OrderID,
	).Scan(&f.order.ID, &f.order.StoreID, &f.order.Items, &f.order.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return f, fmt.Errorf("%w: %s", ErrOrderNotFound, input.OrderID)
	}
	if err != nil {
		return f, fmt.Errorf("%w: load order: %v", ErrUpdateFailed, err)
	}

	if f.order.StoreID != input.CallerUID {
		return f, fmt.Errorf("%w: caller %s does not own order %s", ErrForbidden, input.CallerUID, input.OrderID)
	}

	f.previous = f.order.Status
	if input.PreviousStatus != nil && *input.PreviousStatus != f.previous {
		h.logger.Warn("client previous status is stale", map[string]interface{}{
			"orderId":        input.OrderID,
			"clientPrevious": *input.PreviousStatus,
			"storedStatus":   f.previous,
		})
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		input.NewStatus, input.OrderID,
	); err != nil {
		return f, fmt.Errorf("%w: update status: %v", ErrUpdateFailed, err)
	}

	if !h.active.EntersActive(f.previous, input.NewStatus) {
		return f, nil
	}

	alerts, err := h.reduceInventory(ctx, tx, &f.order)
	if err != nil {
		return f, err
	}
	f.reduced = true
	f.alerts = alerts
	return f, nil
}

// reduceInventory decrements stock for every order item with the product
// rows locked, writes each touched product once, and returns the alerts for
// the final counters that sit in the low-stock band.
func (h *Handler) reduceInventory(ctx context.Context, tx *sql.Tx, order *models.Order) ([]notifications.LowStockAlert, error) {
	ids := make([]string, 0, len(order.Items))
	seen := make(map[string]bool, len(order.Items))
	for _, item := range order.Items {
		if item.ProductID == "" || seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT `+catalog.ProductColumns+` FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: lock products: %v", ErrUpdateFailed, err)
	}
	products := make(map[string]*models.Product, len(ids))
	for rows.Next() {
		p, err := catalog.ScanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: scan product: %v", ErrUpdateFailed, err)
		}
		products[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: lock products: %v", ErrUpdateFailed, err)
	}

	type reductionKey struct{ productID, variantKey string }
	final := make(map[reductionKey]inventory.Reduction)
	var touched []reductionKey
	names := make(map[string]string)

	for _, item := range order.Items {
		p, ok := products[item.ProductID]
		if !ok {
			h.logger.Warn("order item references missing product", map[string]interface{}{
				"orderId":   order.ID,
				"productId": item.ProductID,
			})
			continue
		}
		r := inventory.Apply(p, item, h.config.DefaultLowStockThreshold)
		k := reductionKey{r.ProductID, r.VariantKey}
		if _, dup := final[k]; !dup {
			touched = append(touched, k)
		}
		final[k] = r
		if item.Name != "" {
			names[item.ProductID] = item.Name
		} else if _, ok := names[item.ProductID]; !ok {
			names[item.ProductID] = p.Name
		}

		kind := "simple"
		if r.VariantKey != "" {
			kind = "variant"
		}
		metrics.InventoryDecrements.WithLabelValues(kind).Inc()
	}

	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE products
			SET inventory = $1, quantity = $2, variant_stock = $3, updated_at = NOW()
			WHERE id = $4`,
			p.Inventory, p.Quantity, p.VariantStock, p.ID,
		); err != nil {
			return nil, fmt.Errorf("%w: write product %s: %v", ErrUpdateFailed, p.ID, err)
		}
	}

	var alerts []notifications.LowStockAlert
	for _, k := range touched {
		r := final[k]
		if !r.LowStock() {
			continue
		}
		alerts = append(alerts, notifications.LowStockAlert{
			StoreID:     order.StoreID,
			ProductID:   r.ProductID,
			ProductName: names[r.ProductID],
			VariantKey:  r.VariantKey,
			Remaining:   r.NewStock,
		})
	}
	return alerts, nil
}

func (h *Handler) notifyLowStock(ctx context.Context, alerts []notifications.LowStockAlert) {
	if h.deps.Notifier == nil {
		return
	}
	for _, a := range alerts {
		if _, err := h.deps.Notifier.NotifyLowStock(ctx, a); err != nil {
			h.logger.Warn("low stock notification failed", map[string]interface{}{
				"productId":  a.ProductID,
				"variantKey": a.VariantKey,
				"error":      err,
			})
		}
	}
}

func (h *Handler) publish(ctx context.Context, f fulfillment, newStatus string) {
	if h.deps.Events == nil {
		return
	}
	event := StatusChangedEvent{
		OrderID:          f.order.ID,
		StoreID:          f.order.StoreID,
		PreviousStatus:   f.previous,
		NewStatus:        newStatus,
		InventoryReduced: f.reduced,
		LowStockAlerts:   len(f.alerts),
	}
	if err := h.deps.Events.Publish(ctx, EventOrderStatusChanged, event); err != nil {
		h.logger.Warn("order event publish failed", map[string]interface{}{"orderId": f.order.ID, "error": err})
	}
}

func (h *Handler) tracer() trace.Tracer {
	if h.deps.Tracer != nil {
		return h.deps.Tracer
	}
	return noop.NewTracerProvider().Tracer(Endpoint)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
