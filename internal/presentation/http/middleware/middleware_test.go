package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/salesdoc-api/internal/config"
	infraRepo "github.com/sangkips/salesdoc-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdoc-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareScopesRequestToBusiness(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour)
	businessID := uuid.New()
	token, err := jwt.GenerateAccessToken(uuid.New(), businessID, "สมหญิง", []string{"owner"})
	require.NoError(t, err)

	var scoped uuid.UUID
	r := gin.New()
	r.Use(AuthMiddleware(jwt))
	r.GET("/", func(c *gin.Context) {
		scoped, _ = infraRepo.GetBusinessID(c.Request.Context())
		assert.Equal(t, "สมหญิง", c.GetString("user_name"))
		assert.Equal(t, businessID, GetBusinessID(c))
		c.Status(http.StatusOK)
	})

	w := serve(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, businessID, scoped)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, token+"x").Code)
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_roles", []string{c.GetHeader("X-Role")})
	}, RequireRole("owner", "admin"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for role, code := range map[string]int{"owner": http.StatusOK, "admin": http.StatusOK, "staff": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Role", role)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, code, w.Code, role)
	}
}

func TestRateLimiterPerBusiness(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	rl := NewBusinessRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2}, done)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Business"); id != "" {
			c.Set("business_id", uuid.MustParse(id))
		}
	}, rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(business string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Business", business)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	a, b := uuid.NewString(), uuid.NewString()
	assert.Equal(t, http.StatusOK, call(a))
	assert.Equal(t, http.StatusOK, call(a))
	assert.Equal(t, http.StatusTooManyRequests, call(a))
	assert.Equal(t, http.StatusOK, call(b))
	assert.Equal(t, http.StatusOK, call(""))

	assert.Equal(t, 3, rl.Stats()["active_keys"])
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewBusinessRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, EntryTTL: time.Minute}, nil)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("business:a")
	now = now.Add(2 * time.Minute)
	rl.getLimiter("business:b")
	rl.cleanup()

	assert.Equal(t, 1, rl.Stats()["active_keys"])
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(100, 60)
	assert.InDelta(t, 100.0/60.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 100, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFrom(0, 60))
}

func TestCORSExposesDownloadHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}
