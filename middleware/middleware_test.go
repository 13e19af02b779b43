package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-backend/config"
	"rental-backend/models"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*services.AuthService, string) {
	t.Helper()
	db, err := config.OpenDatabase(config.DBSettings{Driver: "sqlite", Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)

	auth := services.NewAuthService(db, "test-secret")
	require.NoError(t, auth.EnsureAdmin("admin@example.com", "s3cret", "Admin"))
	admin, err := auth.Authenticate("admin@example.com", "s3cret")
	require.NoError(t, err)
	token, _, err := auth.IssueToken(admin)
	require.NoError(t, err)
	return auth, token
}

func protectedRouter(auth *services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger())
	r.GET("/private", RequireAdmin(auth), func(c *gin.Context) {
		admin := c.MustGet("admin").(*models.AdminUser)
		c.String(http.StatusOK, admin.Email)
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	auth, token := newAuth(t)
	r := protectedRouter(auth)

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	assert.Equal(t, http.StatusOK, serve(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, serve(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, serve(req).Code)
}

func TestRequireAdminDeletedAdmin(t *testing.T) {
	auth, token := newAuth(t)
	require.NoError(t, auth.DB.Where("1 = 1").Delete(&models.AdminUser{}).Error)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(auth).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimiter(nil, "login", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

type fakeCounter struct {
	counts    map[string]int64
	ttls      map[string]time.Duration
	expireErr error
	deleted   []string
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCounter) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.counts, k)
		delete(f.ttls, k)
		f.deleted = append(f.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func limitedRouter(store counterStore, limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", rateLimiter(store, "login", limit, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func postLogin(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	return w.Code
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	store := newFakeCounter()
	r := limitedRouter(store, 2)

	assert.Equal(t, http.StatusOK, postLogin(r))
	assert.Equal(t, http.StatusOK, postLogin(r))
	assert.Equal(t, http.StatusTooManyRequests, postLogin(r))

	require.Len(t, store.ttls, 1)
	for _, ttl := range store.ttls {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestRateLimiterDropsCounterWhenExpireFails(t *testing.T) {
	store := newFakeCounter()
	store.expireErr = errors.New("READONLY")
	r := limitedRouter(store, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, postLogin(r))
	}
	assert.Len(t, store.deleted, 3)
	assert.Empty(t, store.counts)
}
