// internal/api/storefront/get-store/handler.go
package getstore

import (
	"context"
	"errors"
	"net/http"

	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/models"
	"storefront-platform/internal/store"

	"github.com/gin-gonic/gin"
)

const Endpoint = "get-store"

var ErrStoreUnpublished = errors.New("STORE_UNPUBLISHED")

// StoreFinder resolves a tenant slug to its store.
type StoreFinder interface {
	Find(ctx context.Context, slug string) (*models.Store, error)
}

type Handler struct {
	config    *Config
	stores    StoreFinder
	responder *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, stores StoreFinder, responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		stores:    stores,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	name := c.Param("storeName")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	s, err := h.execute(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrLookupFailed) {
			h.logger.Error("store lookup failed", map[string]interface{}{"slug": name, "error": err})
		}
		h.responder.Respond(c, apperrors.NewStoreNotFoundError(name))
		return
	}
	c.JSON(http.StatusOK, Output{Store: s})
}

// execute returns the store only when its website is published.
func (h *Handler) execute(ctx context.Context, name string) (*models.Store, error) {
	s, err := h.stores.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	if !s.Website.Enabled {
		return nil, ErrStoreUnpublished
	}
	return s, nil
}
