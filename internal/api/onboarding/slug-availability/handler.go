// internal/api/onboarding/slug-availability/handler.go
package slugavailability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/slug"

	"github.com/gin-gonic/gin"
)

const Endpoint = "slug-availability"

var (
	ErrSlugInvalid = errors.New("SLUG_INVALID")
	ErrCheckFailed = errors.New("SLUG_CHECK_FAILED")
)

type Handler struct {
	config    *Config
	checker   slug.AvailabilityChecker
	suggester *slug.Suggester
	responder *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, checker slug.AvailabilityChecker, suggester *slug.Suggester,
	responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		checker:   checker,
		suggester: suggester,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	var input Input
	if err := c.ShouldBindQuery(&input); err != nil || input.Name == "" {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Store name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		if errors.Is(err, ErrSlugInvalid) {
			h.responder.Respond(c, apperrors.NewSlugInvalidError(err.Error()))
			return
		}
		h.responder.Respond(c, apperrors.NewDatabaseError(err))
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	s := slug.Normalize(input.Name)
	if err := slug.Validate(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSlugInvalid, err)
	}

	available, err := h.checker.IsAvailable(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}

	out := &Output{Slug: s, Available: available, Suggestions: []string{}}
	if !available {
		suggestions, err := h.suggester.Suggest(ctx, s)
		if err != nil {
			h.logger.Warn("slug suggestions incomplete", map[string]interface{}{"slug": s, "error": err})
		}
		out.Suggestions = suggestions
	}
	return out, nil
}
