package middleware

import (
    "net/http"
    "strings"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/redis/go-redis/v9"
)

const signInRateWindow = time.Minute

// SignInRateLimit limits sign-in submissions per email (or client IP when the
// body has none) using Redis. Without Redis it is a no-op; cache errors fail open.
func SignInRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
    if maxPerMin <= 0 {
        maxPerMin = 5
    }
    return func(c *fiber.Ctx) error {
        if cache == nil {
            return c.Next()
        }
        var req struct {
            Email string `json:"email"`
        }
        _ = c.BodyParser(&req)
        subject := strings.ToLower(strings.TrimSpace(req.Email))
        if subject == "" {
            subject = c.IP()
        }
        key := "rl:signin:" + subject
        cnt, err := cache.Incr(c.UserContext(), key).Result()
        if err != nil {
            return c.Next()
        }
        if cnt == 1 {
            cache.Expire(c.UserContext(), key, signInRateWindow)
        }
        if cnt > int64(maxPerMin) {
            return fiber.NewError(http.StatusTooManyRequests, "too many sign-in attempts, try again later")
        }
        return c.Next()
    }
}
