package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const issueLimitWindow = 24 * time.Hour

// IssueRateLimiter caps issue submissions per client IP over a rolling day. A nil
// client or a non-positive limit disables it.
func IssueRateLimiter(client *redis.Client, prefix string, limit int, logger *zap.Logger) gin.HandlerFunc {
	if client == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// Create individual key for each client
		clientKey := prefix + ":" + c.ClientIP()

		count, err := client.Incr(ctx, clientKey).Result()
		if err != nil {
			logger.Error("rate limiter increment failed", zap.String("key", clientKey), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			return
		}

		// Set TTL only for the first increment
		if count == 1 {
			if err := client.Expire(ctx, clientKey, issueLimitWindow).Err(); err != nil {
				logger.Error("rate limiter expire failed", zap.String("key", clientKey), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, clientKey).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			return
		}

		c.Next()
	}
}
