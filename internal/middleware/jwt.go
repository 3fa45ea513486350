package middleware

import (
    "errors"
    "net/http"
    "strings"

    "github.com/gofiber/fiber/v2"

    "github.com/carelink/carelink/internal/auth"
)

// JWTAuth validates bearer access tokens and stores the account id in locals.
func JWTAuth(tokens *auth.Service) fiber.Handler {
    return func(c *fiber.Ctx) error {
        authz := c.Get(fiber.HeaderAuthorization)
        if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
            return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
        }
        tokenStr := strings.TrimSpace(authz[len("Bearer "):])
        user, err := tokens.Authorize(c.UserContext(), tokenStr)
        if errors.Is(err, auth.ErrTokenInvalidated) {
            return fiber.NewError(http.StatusUnauthorized, "token invalidated")
        }
        if err != nil {
            return fiber.NewError(http.StatusUnauthorized, "invalid token")
        }

        c.Locals(auth.LocalUserID, user.ID)
        c.Locals("token_version", user.TokenVersion)
        return c.Next()
    }
}
