// internal/api/products/notify/handler.go
package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront-platform/internal/common/database"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/metrics"
	"storefront-platform/internal/common/validation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	Endpoint = "product-notify"

	rateKeyPrefix = "ratelimit:notify:"
)

var (
	ErrInvalidEmail    = errors.New("INVALID_EMAIL")
	ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")
	ErrDatabaseFailed  = errors.New("DATABASE_ERROR")
)

type Handler struct {
	config    *Config
	db        *sql.DB
	redis     *redis.Client
	validator *validation.Validator
	responder *apperrors.ErrorHandler
	logger    logger.Logger
}

// NewHandler builds the handler. rdb may be nil to disable rate limiting.
func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, validator *validation.Validator,
	responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		db:        db,
		redis:     rdb,
		validator: validator,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	if !h.allow(ctx, c.ClientIP()) {
		metrics.NotifySignups.WithLabelValues("rate_limited").Inc()
		h.responder.Respond(c, apperrors.NewRateLimitedError())
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Product ID and email are required"))
		return
	}
	if res := h.validator.ValidateBytes(validation.SchemaNotifyRequest, body); !res.Valid {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Product ID and email are required"))
		return
	}
	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Product ID and email are required"))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.NotifySignups.WithLabelValues("error").Inc()
		switch {
		case errors.Is(err, ErrInvalidEmail):
			h.responder.Respond(c, apperrors.NewInvalidEmailError())
		case errors.Is(err, ErrProductNotFound):
			h.responder.Respond(c, apperrors.NewProductNotFoundError(input.ProductID))
		default:
			h.responder.Respond(c, apperrors.NewDatabaseError(err))
		}
		return
	}
	c.JSON(http.StatusOK, output)
}

// allow applies a fixed-window counter per client IP. Redis failures let the
// request through.
func (h *Handler) allow(ctx context.Context, ip string) bool {
	if h.redis == nil || h.config.RateLimit <= 0 {
		return true
	}
	key := rateKeyPrefix + ip
	n, err := database.HitWindow(ctx, h.redis, key, h.config.RateWindow)
	if err != nil {
		h.logger.Warn("rate limit check failed", map[string]interface{}{"error": err})
		if n == 0 {
			return true
		}
	}
	return n <= int64(h.config.RateLimit)
}

// Execute adds the email to the product's back-in-stock list.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !validation.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, input.Email)
	}

	// The append is conditional so concurrent sign-ups never duplicate an entry.
	res, err := h.db.ExecContext(ctx, `
		UPDATE products
		SET notify_when_available = array_append(COALESCE(notify_when_available, '{}'), $2)
		WHERE id = $1 AND NOT ($2 = ANY(COALESCE(notify_when_available, '{}')))`,
		input.ProductID, email,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: append subscriber: %v", ErrDatabaseFailed, err)
	}
	added, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: append subscriber: %v", ErrDatabaseFailed, err)
	}

	if added == 1 {
		metrics.NotifySignups.WithLabelValues("added").Inc()
		h.logger.Info("back-in-stock subscriber added", map[string]interface{}{"productId": input.ProductID})
		return &Output{Success: true, Message: "You will be notified when this product is back in stock"}, nil
	}

	var exists bool
	if err := h.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, input.ProductID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%w: product lookup: %v", ErrDatabaseFailed, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, input.ProductID)
	}

	metrics.NotifySignups.WithLabelValues("already_subscribed").Inc()
	return &Output{Success: true, Message: "You are already on the notification list"}, nil
}
