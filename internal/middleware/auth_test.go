package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(role string, expiresIn time.Duration) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func newAuthRouter(captured *domain.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		*captured = actor
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header func(t *testing.T) string
		want   int
	}{
		{"missing header", func(t *testing.T) string { return "" }, http.StatusUnauthorized},
		{"not bearer", func(t *testing.T) string { return "Basic abc" }, http.StatusUnauthorized},
		{"garbage token", func(t *testing.T) string { return "Bearer not-a-jwt" }, http.StatusUnauthorized},
		{"wrong secret", func(t *testing.T) string {
			return "Bearer " + signToken(t, "other-secret", jwt.SigningMethodHS256, validClaims("admin", time.Hour))
		}, http.StatusUnauthorized},
		{"expired", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, validClaims("admin", -time.Hour))
		}, http.StatusUnauthorized},
		{"missing role", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, validClaims("", time.Hour))
		}, http.StatusUnauthorized},
		{"valid", func(t *testing.T) string {
			return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, validClaims("siteManager", time.Hour))
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor domain.Actor
			r := newAuthRouter(&actor)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, domain.Actor{UserID: "user-1", Role: domain.RoleSiteManager}, actor)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	instance := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 2})

	r := gin.New()
	r.GET("/ping", RateLimit(instance), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
