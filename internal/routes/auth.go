package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/carelink/carelink/internal/auth"
)

// RegisterAuthRoutes wires token refresh and logout endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, jwtmw fiber.Handler) {
    group := r.Group("/auth")
    group.Post("/refresh", h.Refresh)
    group.Post("/logout", jwtmw, h.Logout)
}
