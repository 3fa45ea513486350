package routes

import (
    "net/http"

    "github.com/gofiber/fiber/v2"

    "github.com/carelink/carelink/internal/auth"
    "github.com/carelink/carelink/internal/identity"
)

// RegisterProfileRoute exposes the authenticated patient's account.
func RegisterProfileRoute(r fiber.Router, ids *identity.Service) {
    r.Get("/me", func(c *fiber.Ctx) error {
        uid, _ := c.Locals(auth.LocalUserID).(string)
        if uid == "" {
            return fiber.NewError(http.StatusUnauthorized, "unauthorized")
        }
        user, err := ids.Get(c.UserContext(), uid)
        if err != nil {
            return fiber.NewError(http.StatusNotFound, "user not found")
        }
        return c.Status(http.StatusOK).JSON(fiber.Map{
            "user_id":       user.ID,
            "name":          user.Name,
            "email":         user.Email,
            "mobile":        user.Mobile,
            "token_version": user.TokenVersion,
            "created_at":    user.CreatedAt,
        })
    })
}
