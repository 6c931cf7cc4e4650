// internal/api/dashboard/update-website/handler.go
package updatewebsite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"storefront-platform/internal/common/auth"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/validation"
	"storefront-platform/internal/models"
	"storefront-platform/internal/store"

	"github.com/gin-gonic/gin"
)

const Endpoint = "update-website"

type WebsiteStore interface {
	LoadStore(ctx context.Context, ownerID string) (*models.Store, error)
	SaveWebsite(ctx context.Context, ownerID string, w models.Website) error
}

type Handler struct {
	config    *Config
	stores    WebsiteStore
	validator *validation.Validator
	responder *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, stores WebsiteStore, validator *validation.Validator,
	responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		stores:    stores,
		validator: validator,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Invalid website settings"))
		return
	}
	if res := h.validator.ValidateBytes(validation.SchemaWebsiteUpdate, body); !res.Valid {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Invalid website settings").
			WithMetadata("details", res.GetErrorMessages()))
		return
	}
	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Invalid website settings"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	uid := auth.CallerUID(c)
	s, err := h.stores.LoadStore(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.responder.Respond(c, apperrors.NewStoreNotFoundError(uid))
			return
		}
		h.responder.Respond(c, apperrors.NewDatabaseError(err))
		return
	}

	website := s.Website
	input.Apply(&website)
	if err := h.stores.SaveWebsite(ctx, uid, website); err != nil {
		h.responder.Respond(c, apperrors.NewDatabaseError(err))
		return
	}

	h.logger.Info("website updated", map[string]interface{}{"uid": uid, "enabled": website.Enabled})
	c.JSON(http.StatusOK, Output{Success: true, Website: website})
}
