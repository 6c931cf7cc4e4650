// internal/api/dashboard/mark-notification-read/handler.go
package marknotificationread

import (
	"context"
	"errors"
	"net/http"

	"storefront-platform/internal/common/auth"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/notifications"

	"github.com/gin-gonic/gin"
)

const Endpoint = "mark-notification-read"

type NotificationMarker interface {
	MarkRead(ctx context.Context, userID, id string) error
}

type Handler struct {
	config    *Config
	repo      NotificationMarker
	responder *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, repo NotificationMarker, responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		repo:      repo,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

// Handle marks one of the caller's notifications as read. Another user's
// notification is reported as missing.
func (h *Handler) Handle(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	if err := h.repo.MarkRead(ctx, auth.CallerUID(c), id); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			h.responder.Respond(c, apperrors.NewNotificationNotFoundError(id))
			return
		}
		h.responder.Respond(c, apperrors.NewDatabaseError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
