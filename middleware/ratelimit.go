package middleware

import (
	"context"
	"fmt"
	"time"

	"event_ticketing/helper"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// PurchaseRateLimit caps purchase attempts per user (per IP for anonymous
// callers) using a redis counter with a one minute window.
func PurchaseRateLimit(redisClient *redis.Client, maxPerMinute int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := ""
		if claim, ok := helper.ClaimFromToken(c); ok {
			key = fmt.Sprintf("ratelimit:purchase:user:%d", claim.UserId)
		} else {
			key = fmt.Sprintf("ratelimit:purchase:ip:%s", c.IP())
		}

		ctx := context.Background()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// redis down should not block purchases
			return c.Next()
		}
		if count == 1 {
			redisClient.Expire(ctx, key, time.Minute)
		}
		if count > maxPerMinute {
			return utils.ErrorResponse(c, fiber.StatusTooManyRequests, "Too many purchase attempts, try again later", nil)
		}

		return c.Next()
	}
}
