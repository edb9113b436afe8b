package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/infrastructure/auth"
	"github.com/minerepair/repairhub/internal/infrastructure/ratelimit"
	"github.com/minerepair/repairhub/internal/shared/authorization"
	"github.com/minerepair/repairhub/internal/shared/constants"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAccounts struct {
	users map[uint]*user.User
	err   error
}

func (f *fakeAccounts) GetByID(_ context.Context, id uint) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func mustUser(t *testing.T, id uint, role authorization.UserRole, active bool) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, "Test", "test@example.com", role, active, nil, "ru", time.Now())
	require.NoError(t, err)
	return u
}

type fakeEnforcer struct {
	allowed map[string]bool
	err     error
}

func (f *fakeEnforcer) Enforce(role, path, method string) (bool, error) {
	return f.allowed[role+" "+method+" "+path], f.err
}

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, _ ratelimit.RateLimitConfig) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

func (f *fakeLimiter) GetRemaining(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}

func (f *fakeLimiter) Reset(context.Context, string) error { return nil }

func perform(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", 5)
	accounts := &fakeAccounts{users: map[uint]*user.User{
		1: mustUser(t, 1, authorization.RoleCustomer, true),
		2: mustUser(t, 2, authorization.RoleContractor, false),
		3: mustUser(t, 3, authorization.RoleManager, true),
	}}
	mw := NewAuthMiddleware(jwtSvc, accounts, logger.NewNopLogger())

	engine := gin.New()
	engine.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "role": p.Role})
	})

	token := func(id uint, role authorization.UserRole) string {
		s, _, err := jwtSvc.Generate(id, role)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "abc", http.StatusUnauthorized},
		{"active user", token(1, authorization.RoleCustomer), http.StatusOK},
		{"deactivated user", token(2, authorization.RoleContractor), http.StatusForbidden},
		{"unknown user", token(99, authorization.RoleCustomer), http.StatusUnauthorized},
		{"stale role", token(3, authorization.RoleAdmin), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(engine, http.MethodGet, "/me", tt.token)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthMiddleware_AccountLookupFailure(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", 5)
	mw := NewAuthMiddleware(jwtSvc, &fakeAccounts{err: errors.New("db down")}, logger.NewNopLogger())

	engine := gin.New()
	engine.GET("/me", mw.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	tok, _, err := jwtSvc.Generate(1, authorization.RoleCustomer)
	require.NoError(t, err)
	w := perform(engine, http.MethodGet, "/me", tok)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func withPrincipal(p authorization.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetPrincipal(c, p)
		c.Next()
	}
}

func TestPermissionMiddleware_Authorize(t *testing.T) {
	enforcer := &fakeEnforcer{allowed: map[string]bool{"customer POST /requests/:id/cancel": true}}
	mw := NewPermissionMiddleware(enforcer, logger.NewNopLogger())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	engine := gin.New()
	customer := engine.Group("/", withPrincipal(authorization.Principal{UserID: 1, Role: authorization.RoleCustomer}), mw.Authorize())
	customer.POST("/requests/:id/cancel", ok)
	customer.POST("/requests/:id/start", ok)

	assert.Equal(t, http.StatusOK, perform(engine, http.MethodPost, "/requests/7/cancel", "").Code)
	assert.Equal(t, http.StatusForbidden, perform(engine, http.MethodPost, "/requests/7/start", "").Code)

	enforcer.err = errors.New("adapter down")
	assert.Equal(t, http.StatusInternalServerError, perform(engine, http.MethodPost, "/requests/7/cancel", "").Code)
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID)) })

	w := perform(engine, http.MethodGet, "/", "")
	generated := w.Header().Get(constants.HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "trace-1")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "trace-1", w.Header().Get(constants.HeaderXRequestID))
}

func TestUserRateLimiter_Limit(t *testing.T) {
	limiter := &fakeLimiter{allow: true}
	mw := NewUserRateLimiter(limiter, logger.NewNopLogger())
	cfg := ratelimit.RateLimitConfig{RequestsPerHour: 1}

	engine := gin.New()
	engine.POST("/requests", withPrincipal(authorization.Principal{UserID: 5, Role: authorization.RoleCustomer}), mw.Limit("create_request", cfg), func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, http.StatusCreated, perform(engine, http.MethodPost, "/requests", "").Code)
	assert.Equal(t, []string{"create_request:5"}, limiter.keys)

	limiter.allow = false
	assert.Equal(t, http.StatusTooManyRequests, perform(engine, http.MethodPost, "/requests", "").Code)

	limiter.err = errors.New("redis down")
	assert.Equal(t, http.StatusCreated, perform(engine, http.MethodPost, "/requests", "").Code)
}

func TestUserRateLimiter_NilIsDisabled(t *testing.T) {
	var mw *UserRateLimiter
	engine := gin.New()
	engine.POST("/requests", mw.Limit("create_request", ratelimit.RateLimitConfig{}), func(c *gin.Context) { c.Status(http.StatusCreated) })
	assert.Equal(t, http.StatusCreated, perform(engine, http.MethodPost, "/requests", "").Code)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://app.example.com"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
