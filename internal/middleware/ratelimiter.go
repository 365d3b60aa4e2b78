package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// counterStore is the subset of the redis client the limiter needs
type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimiter counts requests per client IP in fixed redis windows
type RateLimiter struct {
	store counterStore
}

// NewRateLimiter creates a RateLimiter backed by client
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{store: client}
}

// Limit rejects a client with 429 once it exceeds limit requests per window.
// Redis failures let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, err := rl.store.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Rate limiter unavailable")
			c.Next()
			return
		}

		// first hit opens the window
		if count == 1 {
			if err := rl.store.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("Failed to set rate limit window")
			}
		}

		if count > int64(limit) {
			ttl, err := rl.store.TTL(ctx, key).Result()
			// a counter without expiry would block the client forever
			if err == nil && ttl < 0 {
				if err := rl.store.Expire(ctx, key, window).Err(); err != nil {
					logger.Warn().Err(err).Str("key", key).Msg("Failed to repair rate limit window")
				}
				ttl = window
			}
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTooManyRequests, "Too many requests").
				WithDetails(gin.H{"retryAfterSeconds": int64(ttl.Seconds())}).
				WithSeverity(dto.ErrorSeverityWarning)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}
