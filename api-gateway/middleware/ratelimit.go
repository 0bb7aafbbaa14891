package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/foodgram/pkg/logger"
)

// RateLimiter enforces a fixed-window request quota per client, counted
// in redis so the limit holds across gateway replicas.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

// Handler counts the request against the caller's current window and
// rejects with 429 once the quota is spent. Redis outages fail open.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		window := time.Now().Unix() / int64(rl.window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", rl.identifier(c), window)

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("rate limit counter unavailable, allowing request")
			return c.Next()
		}
		if count == 1 {
			rl.rdb.Expire(ctx, key, rl.window)
		}

		remaining := rl.limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt((window+1)*int64(rl.window.Seconds()), 10))

		if int(count) > rl.limit {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}

// Authenticated callers are limited per account, anonymous ones per IP.
func (rl *RateLimiter) identifier(c *fiber.Ctx) string {
	if userID, ok := c.Locals("user_id").(uint); ok {
		return "user:" + strconv.FormatUint(uint64(userID), 10)
	}
	return "ip:" + c.IP()
}
