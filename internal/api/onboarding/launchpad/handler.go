// internal/api/onboarding/launchpad/handler.go
package launchpad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-platform/internal/common/auth"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/storage"
	"storefront-platform/internal/common/validation"
	"storefront-platform/internal/models"
	"storefront-platform/internal/slug"
	"storefront-platform/internal/store"

	"github.com/gin-gonic/gin"
)

const Endpoint = "launchpad"

var (
	ErrSlugInvalid  = errors.New("SLUG_INVALID")
	ErrSlugTaken    = errors.New("SLUG_TAKEN")
	ErrUploadFailed = errors.New("STORAGE_UPLOAD_FAILED")
	ErrCreateFailed = errors.New("STORE_CREATE_FAILED")
)

// StoreWriter is the part of the store repository the launchpad needs.
type StoreWriter interface {
	ResolveOwner(ctx context.Context, slug string) (string, error)
	ReserveSlug(ctx context.Context, rec models.StoreNameRecord) (bool, error)
	UpsertStore(ctx context.Context, s *models.Store) error
}

type OnboardingMarker interface {
	CompleteOnboarding(ctx context.Context, uid string) error
}

type Handler struct {
	config    *Config
	stores    StoreWriter
	users     OnboardingMarker
	blobs     storage.BlobStore
	validator *validation.Validator
	responder *apperrors.ErrorHandler
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, stores StoreWriter, users OnboardingMarker, blobs storage.BlobStore,
	validator *validation.Validator, responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		stores:    stores,
		users:     users,
		blobs:     blobs,
		validator: validator,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
		now:       time.Now,
	}
}

func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Store name is required"))
		return
	}
	if res := h.validator.ValidateBytes(validation.SchemaLaunchpadRequest, body); !res.Valid {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Store name is required"))
		return
	}
	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Store name is required"))
		return
	}
	input.CallerUID = auth.CallerUID(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.responder.Respond(c, toStandardError(err, slug.Normalize(input.StoreName)))
		return
	}
	c.JSON(http.StatusOK, output)
}

func toStandardError(err error, s string) *apperrors.StandardError {
	switch {
	case errors.Is(err, ErrSlugInvalid):
		return apperrors.NewSlugInvalidError(err.Error())
	case errors.Is(err, ErrSlugTaken):
		return apperrors.NewSlugTakenError(s)
	case errors.Is(err, ErrInvalidLogo):
		return apperrors.NewInvalidInputError("Logo must be a base64 image data URL")
	case errors.Is(err, ErrUploadFailed):
		return apperrors.NewStorageUploadError(err)
	default:
		return apperrors.NewDatabaseError(err)
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	s := slug.Normalize(input.StoreName)
	if err := slug.Validate(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSlugInvalid, err)
	}

	if err := h.claimSlug(ctx, s, input); err != nil {
		return nil, err
	}

	logo := placeholderLogo(input.StoreName)
	if input.Logo != "" {
		decoded, err := decodeDataURL(input.Logo, h.config.MaxLogoBytes)
		if err != nil {
			return nil, err
		}
		logo = decoded
	}

	objectPath := fmt.Sprintf("logos/%s/logo-%d.%s", input.CallerUID, h.now().UnixMilli(), logo.ext)
	logoURL, err := h.blobs.Upload(ctx, objectPath, logo.contentType, logo.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	st := &models.Store{
		OwnerID:       input.CallerUID,
		StoreName:     input.StoreName,
		StoreNameSlug: s,
		Website:       models.DefaultWebsite(input.StoreName, logoURL),
	}
	if err := h.stores.UpsertStore(ctx, st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	if h.users != nil {
		if err := h.users.CompleteOnboarding(ctx, input.CallerUID); err != nil {
			h.logger.Warn("onboarding flag not saved", map[string]interface{}{"uid": input.CallerUID, "error": err})
		}
	}

	h.logger.Info("store launched", map[string]interface{}{"uid": input.CallerUID, "slug": s})
	return &Output{
		Success:  true,
		Slug:     s,
		StoreURL: fmt.Sprintf("https://%s.%s", s, h.config.BaseDomain),
		Logo:     logoURL,
	}, nil
}

// claimSlug makes sure the registry maps s to the caller, reserving it when
// it is still free.
func (h *Handler) claimSlug(ctx context.Context, s string, input *Input) error {
	owner, err := h.stores.ResolveOwner(ctx, s)
	if err == nil {
		if owner != input.CallerUID {
			return fmt.Errorf("%w: %s", ErrSlugTaken, s)
		}
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	created, err := h.stores.ReserveSlug(ctx, models.StoreNameRecord{
		Slug:      s,
		OwnerID:   input.CallerUID,
		StoreName: input.StoreName,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	if !created {
		return fmt.Errorf("%w: %s", ErrSlugTaken, s)
	}
	return nil
}
