// internal/api/dashboard/list-notifications/handler.go
package listnotifications

import (
	"context"
	"net/http"

	"storefront-platform/internal/common/auth"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/models"

	"github.com/gin-gonic/gin"
)

const Endpoint = "list-notifications"

type NotificationLister interface {
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error)
}

type Handler struct {
	config    *Config
	repo      NotificationLister
	responder *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, repo NotificationLister, responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		repo:      repo,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	var input Input
	if err := c.ShouldBindQuery(&input); err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Invalid query parameters"))
		return
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}
	if limit > h.config.MaxLimit {
		limit = h.config.MaxLimit
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	list, err := h.repo.ListForUser(ctx, auth.CallerUID(c), input.Unread, limit)
	if err != nil {
		h.responder.Respond(c, apperrors.NewDatabaseError(err))
		return
	}

	out := Output{Notifications: list}
	for _, n := range list {
		if !n.IsRead {
			out.UnreadCount++
		}
	}
	c.JSON(http.StatusOK, out)
}
