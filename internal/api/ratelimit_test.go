package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLimitedRouter(requestsPerMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/pay", RateLimitByClient(requestsPerMinute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, userAgent string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pay", nil)
	req.Header.Set("User-Agent", userAgent)
	req.RemoteAddr = "203.0.113.7:51000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitByClient(t *testing.T) {
	t.Run("over-budget requests get 429 with a retry hint", func(t *testing.T) {
		r := newLimitedRouter(2)

		for i := 0; i < 2; i++ {
			w := doRequest(r, "test-agent")
			require.Equal(t, http.StatusOK, w.Code, "request %d", i)
		}

		w := doRequest(r, "test-agent")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "retry_after")
	})

	t.Run("zero budget is floored instead of panicking", func(t *testing.T) {
		r := newLimitedRouter(0)
		assert.Equal(t, http.StatusOK, doRequest(r, "test-agent").Code)
	})

	t.Run("budgets are per fingerprint", func(t *testing.T) {
		r := newLimitedRouter(1)

		require.Equal(t, http.StatusOK, doRequest(r, "agent-a").Code)
		assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "agent-a").Code)

		// A different User-Agent from the same IP hashes to its own budget.
		assert.Equal(t, http.StatusOK, doRequest(r, "agent-b").Code)
	})
}
