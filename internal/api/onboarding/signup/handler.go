// internal/api/onboarding/signup/handler.go
package signup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront-platform/internal/common/auth"
	"storefront-platform/internal/common/database"
	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/common/validation"
	"storefront-platform/internal/models"
	"storefront-platform/internal/slug"
	"storefront-platform/internal/store"

	"github.com/gin-gonic/gin"
)

const Endpoint = "signup"

var (
	ErrSlugInvalid  = errors.New("SLUG_INVALID")
	ErrSlugTaken    = errors.New("SLUG_TAKEN")
	ErrSignupFailed = errors.New("SIGNUP_FAILED")
)

// PromoClaimer hands out the limited early-access plan.
type PromoClaimer interface {
	Claim(ctx context.Context) (bool, error)
}

type Handler struct {
	config    *Config
	db        *sql.DB
	stores    *store.Repository
	suggester *slug.Suggester
	promo     PromoClaimer
	validator *validation.Validator
	responder *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, db *sql.DB, stores *store.Repository, suggester *slug.Suggester, promo PromoClaimer,
	validator *validation.Validator, responder *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		db:        db,
		stores:    stores,
		suggester: suggester,
		promo:     promo,
		validator: validator,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"endpoint": Endpoint}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.responder.Respond(c, apperrors.NewInvalidInputError("Store name is required"))
		return
	}
	if res := h.validator.ValidateBytes(validation.SchemaSignupRequest, body); !res.Valid {
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
		h.responder.Respond(c, h.toStandardError(ctx, err))
		return
	}
	c.JSON(http.StatusCreated, output)
}

func (h *Handler) toStandardError(ctx context.Context, err error) *apperrors.StandardError {
	var taken *takenError
	switch {
	case errors.As(err, &taken):
		suggestions, sErr := h.suggester.Suggest(ctx, taken.slug)
		if sErr != nil {
			h.logger.Warn("slug suggestions incomplete", map[string]interface{}{"slug": taken.slug, "error": sErr})
		}
		return apperrors.NewSlugTakenError(taken.slug).WithMetadata("suggestions", suggestions)
	case errors.Is(err, ErrSlugInvalid):
		return apperrors.NewSlugInvalidError(err.Error())
	default:
		return apperrors.NewDatabaseError(err)
	}
}

type takenError struct {
	slug string
}

func (e *takenError) Error() string { return fmt.Sprintf("%s: %s", ErrSlugTaken, e.slug) }
func (e *takenError) Unwrap() error { return ErrSlugTaken }

// Execute registers the caller's store name and profile.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	s := slug.Normalize(input.StoreName)
	if err := slug.Validate(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSlugInvalid, err)
	}

	var newUser bool
	err := database.WithTx(ctx, h.db, func(tx *sql.Tx) error {
		repo := h.stores.WithTx(tx)

		created, err := repo.ReserveSlug(ctx, models.StoreNameRecord{
			Slug:      s,
			OwnerID:   input.CallerUID,
			StoreName: input.StoreName,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSignupFailed, err)
		}
		if !created {
			owner, err := repo.ResolveOwner(ctx, s)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %v", ErrSignupFailed, err)
			}
			if owner != input.CallerUID {
				return &takenError{slug: s}
			}
		}

		onboarding := models.Onboarding{
			SellLocations: input.SellLocations,
			BusinessGoal:  input.BusinessGoal,
			ProductType:   input.ProductType,
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, email, store_name, store_name_slug, plan, promo_user, onboarding, created_at)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6, NOW())
			ON CONFLICT (id) DO NOTHING`,
			input.CallerUID, strings.ToLower(strings.TrimSpace(input.Email)), input.StoreName, s,
			models.PlanFree, onboarding,
		)
		if err != nil {
			return fmt.Errorf("%w: insert user: %v", ErrSignupFailed, err)
		}
		if n, _ := res.RowsAffected(); n == 1 {
			newUser = true
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE users SET store_name = $2, store_name_slug = $3, onboarding = $4
			WHERE id = $1`,
			input.CallerUID, input.StoreName, s, onboarding,
		); err != nil {
			return fmt.Errorf("%w: update user: %v", ErrSignupFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &Output{Success: true, Slug: s, Plan: models.PlanFree}
	if newUser && h.grantPromo(ctx, input.CallerUID) {
		out.Plan = models.PlanPro
		out.PromoUser = true
	}

	h.logger.Info("store name registered", map[string]interface{}{
		"uid":       input.CallerUID,
		"slug":      s,
		"newUser":   newUser,
		"promoUser": out.PromoUser,
	})
	return out, nil
}

// grantPromo claims an early-access spot for a new user. Any failure leaves
// the user on the free plan.
func (h *Handler) grantPromo(ctx context.Context, uid string) bool {
	if h.promo == nil {
		return false
	}
	granted, err := h.promo.Claim(ctx)
	if err != nil {
		h.logger.Warn("promo claim failed", map[string]interface{}{"uid": uid, "error": err})
		return false
	}
	if !granted {
		return false
	}
	if _, err := h.db.ExecContext(ctx,
		`UPDATE users SET plan = $2, promo_user = TRUE WHERE id = $1`, uid, models.PlanPro,
	); err != nil {
		h.logger.Error("promo granted but plan update failed", map[string]interface{}{"uid": uid, "error": err})
		return false
	}
	return true
}
