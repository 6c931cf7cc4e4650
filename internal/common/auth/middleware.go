package auth

import (
	"strings"

	apperrors "storefront-platform/internal/common/errors"

	"github.com/gin-gonic/gin"
)

// UIDKey is the gin context key holding the verified caller uid.
const UIDKey = "uid"

// RequireBearer rejects requests without a valid "Authorization: Bearer" token
// and stores the caller uid under UIDKey.
func RequireBearer(authn Authenticator, responder *apperrors.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			responder.Respond(c, apperrors.NewUnauthorizedError("missing bearer token"))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		id, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			responder.Respond(c, apperrors.NewUnauthorizedError(err.Error()))
			return
		}
		c.Set(UIDKey, id.UID)
		c.Next()
	}
}

// CallerUID returns the uid stored by RequireBearer.
func CallerUID(c *gin.Context) string {
	return c.GetString(UIDKey)
}
