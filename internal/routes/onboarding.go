package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/carelink/carelink/internal/onboarding"
)

// RegisterOnboardingRoutes wires the sign-in, sign-up and OTP steps. The
// idempotency guard covers session creation and verification when present.
func RegisterOnboardingRoutes(r fiber.Router, h *onboarding.Handler, idempotency, signInLimiter fiber.Handler) {
    group := r.Group("/onboarding/sessions")

    group.Post("/", guarded(idempotency, h.Start)...)
    group.Get("/:sessionId", h.Get)
    group.Post("/:sessionId/signin", guarded(signInLimiter, h.SignIn)...)
    group.Post("/:sessionId/signup", h.SignUp)
    group.Post("/:sessionId/back", h.Back)

    otp := group.Group("/:sessionId/otp")
    otp.Post("/digits", h.EnterDigit)
    otp.Post("/backspace", h.Backspace)
    otp.Post("/verify", guarded(idempotency, h.Verify)...)
    otp.Post("/resend", h.Resend)
}

func guarded(mw, h fiber.Handler) []fiber.Handler {
    if mw == nil {
        return []fiber.Handler{h}
    }
    return []fiber.Handler{mw, h}
}
