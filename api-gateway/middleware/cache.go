package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/foodgram/pkg/logger"
)

// ResponseCache keeps short-lived copies of successful GET responses in
// redis so hot read paths (recipe lists, tag and ingredient catalogs) do
// not hit the upstreams on every request.
type ResponseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResponseCache(rdb *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{rdb: rdb, ttl: ttl}
}

// Handler serves cached bodies when present and stores 200 responses on
// miss. Non-GET requests and error responses pass through uncached.
func (rc *ResponseCache) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		ctx := c.UserContext()
		key := rc.key(c)

		if body, err := rc.rdb.Get(ctx, key).Bytes(); err == nil {
			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		} else if err != redis.Nil {
			logger.Warn(ctx).Err(err).Msg("cache lookup failed, bypassing cache")
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			if err := rc.rdb.Set(ctx, key, body, rc.ttl).Err(); err != nil {
				logger.Warn(ctx).Err(err).Msg("cache store failed")
			}
		}
		c.Set("X-Cache", "MISS")
		return nil
	}
}

// Cache keys include the Authorization header so user-scoped fields such
// as is_favorited never leak between accounts.
func (rc *ResponseCache) key(c *fiber.Ctx) string {
	raw := fmt.Sprintf("%s|%s|%s|%s",
		c.Method(), c.Path(), string(c.Request().URI().QueryString()), c.Get(fiber.HeaderAuthorization))
	sum := sha256.Sum256([]byte(raw))
	return "gateway:cache:" + hex.EncodeToString(sum[:])
}
