// Package auth verifies bearer ID tokens and exposes the caller uid to handlers.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"storefront-platform/internal/common/logger"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"
)

var ErrInvalidToken = errors.New("INVALID_TOKEN")

// Identity is the verified caller.
type Identity struct {
	UID       string
	ExpiresAt time.Time
}

// Authenticator turns a raw bearer token into a verified identity.
type Authenticator interface {
	Authenticate(ctx context.Context, idToken string) (*Identity, error)
}

// TokenVerifier is satisfied by *auth.Client from the Firebase Admin SDK.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseAuthenticator verifies tokens against Firebase Auth.
type FirebaseAuthenticator struct {
	verifier TokenVerifier
}

func NewFirebaseAuthenticator(verifier TokenVerifier) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{verifier: verifier}
}

// NewFirebaseClient builds an admin auth client. credentialsFile may be empty
// to fall back to application default credentials.
func NewFirebaseClient(ctx context.Context, projectID, credentialsFile string) (*fbauth.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return client, nil
}

func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, idToken string) (*Identity, error) {
	if idToken == "" {
		return nil, ErrInvalidToken
	}
	tok, err := a.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Identity{UID: tok.UID, ExpiresAt: time.Unix(tok.Expires, 0)}, nil
}

// CachedAuthenticator memoizes verified tokens in Redis. Entries never
// outlive the token itself.
type CachedAuthenticator struct {
	next   Authenticator
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
	now    func() time.Time
}

func NewCachedAuthenticator(next Authenticator, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedAuthenticator {
	return &CachedAuthenticator{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "token-cache"}),
		now:    time.Now,
	}
}

func tokenCacheKey(idToken string) string {
	sum := sha256.Sum256([]byte(idToken))
	return "auth:idtoken:" + hex.EncodeToString(sum[:])
}

func (c *CachedAuthenticator) Authenticate(ctx context.Context, idToken string) (*Identity, error) {
	if idToken == "" {
		return nil, ErrInvalidToken
	}
	key := tokenCacheKey(idToken)

	if uid, err := c.redis.Get(ctx, key).Result(); err == nil && uid != "" {
		return &Identity{UID: uid}, nil
	} else if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("token cache read failed", map[string]interface{}{"error": err})
	}

	id, err := c.next.Authenticate(ctx, idToken)
	if err != nil {
		return nil, err
	}

	ttl := c.ttl
	if !id.ExpiresAt.IsZero() {
		if remaining := id.ExpiresAt.Sub(c.now()); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl > 0 {
		if err := c.redis.Set(ctx, key, id.UID, ttl).Err(); err != nil {
			c.logger.Warn("token cache write failed", map[string]interface{}{"error": err})
		}
	}
	return id, nil
}
