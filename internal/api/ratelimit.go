package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// clientLimiterStore holds a rate limiter per client fingerprint.
type clientLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newClientLimiterStore(requestsPerMinute int) *clientLimiterStore {
	// A zero or negative budget would divide by zero below; floor it instead
	// of trusting config.
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	return &clientLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    requestsPerMinute,
	}
}

func (s *clientLimiterStore) getLimiter(fingerprint string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[fingerprint]
	if !exists {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[fingerprint] = limiter
	}
	return limiter
}

// clientFingerprint identifies a client by IP plus a hash of the User-Agent.
// This is abuse mitigation only, never authentication: both inputs are
// trivially spoofable.
func clientFingerprint(c *gin.Context) string {
	h := fnv.New32a()
	h.Write([]byte(c.GetHeader("User-Agent")))
	return fmt.Sprintf("%s-%08x", c.ClientIP(), h.Sum32())
}

// RateLimitByClient caps requests per client fingerprint. Over-budget
// requests get 429 with a Retry-After hint.
func RateLimitByClient(requestsPerMinute int, logger *zap.Logger) gin.HandlerFunc {
	store := newClientLimiterStore(requestsPerMinute)

	return func(c *gin.Context) {
		fingerprint := clientFingerprint(c)
		limiter := store.getLimiter(fingerprint)
		if !limiter.Allow() {
			logger.Warn("client rate limit exceeded",
				zap.String("fingerprint", fingerprint),
				zap.String("path", c.FullPath()))
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded, try again later",
				"retry_after": 60,
			})
			return
		}
		c.Next()
	}
}
