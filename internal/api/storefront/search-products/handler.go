// internal/api/storefront/search-products/handler.go
package searchproducts

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront-platform/internal/catalog"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/models"
	"storefront-platform/internal/store"

	"github.com/gin-gonic/gin"
)

const Endpoint = "search-products"

var ErrStoreUnavailable = errors.New("STORE_UNAVAILABLE")

type StoreFinder interface {
	Find(ctx context.Context, slug string) (*models.Store, error)
}

type ProductSearcher interface {
	Search(ctx context.Context, p catalog.SearchParams) (*catalog.SearchResult, error)
}

type Handler struct {
	config    *Config
	stores    StoreFinder
	searcher  ProductSearcher
	responder *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, stores StoreFinder, searcher ProductSearcher,
	responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		stores:    stores,
		searcher:  searcher,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	name := c.Param("storeName")

	var input Input
	if err := c.ShouldBindQuery(&input); err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Invalid search parameters"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, name, &input)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound), errors.Is(err, ErrStoreUnavailable):
			h.responder.Respond(c, apperrors.NewStoreNotFoundError(name))
		case errors.Is(err, store.ErrLookupFailed):
			h.logger.Error("store lookup failed", map[string]interface{}{"slug": name, "error": err})
			h.responder.Respond(c, apperrors.NewStoreNotFoundError(name))
		case errors.Is(err, catalog.ErrInvalidSort):
			h.responder.Respond(c, apperrors.NewInvalidInputError("Invalid sort option"))
		case errors.Is(err, catalog.ErrInvalidPriceRange):
			h.responder.Respond(c, apperrors.NewInvalidInputError("Invalid price range"))
		default:
			h.responder.Respond(c, apperrors.NewSearchQueryFailedError(err))
		}
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) execute(ctx context.Context, name string, input *Input) (*Output, error) {
	s, err := h.stores.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	if !s.Website.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, name)
	}

	size := input.Size
	if size <= 0 {
		size = h.config.DefaultPageSize
	}
	if size > h.config.MaxPageSize {
		size = h.config.MaxPageSize
	}
	from := input.From
	if from < 0 {
		from = 0
	}

	res, err := h.searcher.Search(ctx, catalog.SearchParams{
		StoreID:    s.OwnerID,
		Query:      input.Query,
		Category:   input.Category,
		PriceRange: input.PriceRange,
		Sort:       input.Sort,
		From:       from,
		Size:       size,
	})
	if err != nil {
		return nil, err
	}

	return &Output{
		Products:   res.Products,
		Total:      res.Total,
		Categories: res.Categories,
		From:       from,
		Size:       size,
	}, nil
}
