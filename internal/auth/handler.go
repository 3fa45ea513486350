package auth

import (
    "errors"
    "net/http"

    "github.com/gofiber/fiber/v2"
)

// Handler exposes token refresh and logout endpoints.
type Handler struct {
    svc *Service
}

func NewHandler(svc *Service) *Handler {
    return &Handler{svc: svc}
}

type refreshRequest struct {
    RefreshToken string `json:"refresh_token"`
}

// Refresh issues a new access token using a valid refresh token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
    var req refreshRequest
    if err := c.BodyParser(&req); err != nil {
        return fiber.NewError(http.StatusBadRequest, err.Error())
    }
    if req.RefreshToken == "" {
        return fiber.NewError(http.StatusBadRequest, "refresh_token is required")
    }
    token, exp, err := h.svc.Refresh(c.UserContext(), req.RefreshToken)
    if err != nil {
        return fiber.NewError(http.StatusUnauthorized, err.Error())
    }
    return c.Status(http.StatusOK).JSON(fiber.Map{"access_token": token, "expires_in": exp})
}

// Logout invalidates existing tokens of the authenticated account by bumping the token version.
func (h *Handler) Logout(c *fiber.Ctx) error {
    uid, _ := c.Locals(LocalUserID).(string)
    if uid == "" {
        return fiber.NewError(http.StatusUnauthorized, "unauthorized")
    }
    if err := h.svc.Logout(c.UserContext(), uid); err != nil {
        if errors.Is(err, ErrInvalidToken) {
            return fiber.NewError(http.StatusUnauthorized, err.Error())
        }
        return fiber.NewError(http.StatusBadRequest, err.Error())
    }
    return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}

// LocalUserID is the fiber.Ctx locals key holding the authenticated account id.
const LocalUserID = "user_id"
