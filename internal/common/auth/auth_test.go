package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "storefront-platform/internal/common/errors"
	"storefront-platform/internal/common/logger"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	calls int
	uid   string
	exp   time.Time
	err   error
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, _ string) (*fbauth.Token, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &fbauth.Token{UID: f.uid, Expires: f.exp.Unix()}, nil
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestFirebaseAuthenticator(t *testing.T) {
	v := &fakeVerifier{uid: "owner-1", exp: time.Now().Add(time.Hour)}
	a := NewFirebaseAuthenticator(v)

	id, err := a.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", id.UID)

	_, err = a.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	v.err = errors.New("expired")
	_, err = a.Authenticate(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCachedAuthenticator_HitsCacheOnSecondCall(t *testing.T) {
	mr, rdb := setupRedis(t)
	v := &fakeVerifier{uid: "owner-1", exp: time.Now().Add(time.Hour)}
	c := NewCachedAuthenticator(NewFirebaseAuthenticator(v), rdb, 5*time.Minute, logger.NewTestLogger(t))

	for i := 0; i < 3; i++ {
		id, err := c.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "owner-1", id.UID)
	}
	assert.Equal(t, 1, v.calls)

	ttl := mr.TTL(tokenCacheKey("tok"))
	assert.True(t, ttl > 0 && ttl <= 5*time.Minute)
}

func TestCachedAuthenticator_TTLCappedByExpiry(t *testing.T) {
	mr, rdb := setupRedis(t)
	v := &fakeVerifier{uid: "owner-1", exp: time.Now().Add(30 * time.Second)}
	c := NewCachedAuthenticator(NewFirebaseAuthenticator(v), rdb, 5*time.Minute, logger.NewTestLogger(t))

	_, err := c.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.LessOrEqual(t, mr.TTL(tokenCacheKey("tok")), 30*time.Second)
}

func TestCachedAuthenticator_DoesNotCacheFailures(t *testing.T) {
	mr, rdb := setupRedis(t)
	v := &fakeVerifier{err: errors.New("revoked")}
	c := NewCachedAuthenticator(NewFirebaseAuthenticator(v), rdb, time.Minute, logger.NewTestLogger(t))

	_, err := c.Authenticate(context.Background(), "tok")
	require.Error(t, err)
	assert.False(t, mr.Exists(tokenCacheKey("tok")))
}

func TestCachedAuthenticator_RedisDownFallsThrough(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()
	v := &fakeVerifier{uid: "owner-1", exp: time.Now().Add(time.Hour)}
	c := NewCachedAuthenticator(NewFirebaseAuthenticator(v), rdb, time.Minute, logger.NewTestLogger(t))

	id, err := c.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", id.UID)
}

func TestRequireBearer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := &fakeVerifier{uid: "owner-1", exp: time.Now().Add(time.Hour)}
	r := gin.New()
	r.GET("/me", RequireBearer(NewFirebaseAuthenticator(v), apperrors.NewErrorHandler(logger.NewTestLogger(t))),
		func(c *gin.Context) { c.String(http.StatusOK, CallerUID(c)) })

	tests := []struct {
		name   string
		header string
		verr   error
		code   int
	}{
		{"missing", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"invalid", "Bearer bad", errors.New("bad signature"), http.StatusUnauthorized},
		{"ok", "Bearer good", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.err = tt.verr
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "owner-1", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), "Unauthorized")
			}
		})
	}
}
