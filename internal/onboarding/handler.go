package onboarding

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/carelink/carelink/internal/auth"
	"github.com/carelink/carelink/internal/identity"
)

// Handler exposes the onboarding flow over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs an onboarding HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type slotRequest struct {
	Slot  int    `json:"slot"`
	Value string `json:"value"`
}

type otpView struct {
	Slots [OTPLength]string `json:"slots"`
	Focus int               `json:"focus"`
}

type applicantView struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type sessionResponse struct {
	ID        string         `json:"id"`
	Stage     string         `json:"stage"`
	Email     string         `json:"email,omitempty"`
	OTP       *otpView       `json:"otp,omitempty"`
	Applicant *applicantView `json:"applicant,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
	Focus     *FocusHint     `json:"focus,omitempty"`
}

type accountResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type verifyResponse struct {
	Session sessionResponse  `json:"session"`
	Account *accountResponse `json:"account,omitempty"`
	Tokens  *auth.TokenPair  `json:"tokens,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Start opens a new onboarding session.
func (h *Handler) Start(c *fiber.Ctx) error {
	session, err := h.service.Start(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(view(session, nil))
}

// Get returns the current state of a session.
func (h *Handler) Get(c *fiber.Ctx) error {
	session, err := h.service.Get(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(session, nil))
}

// SignIn captures the sign-in credentials.
func (h *Handler) SignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	session, err := h.service.SignIn(c.UserContext(), c.Params("sessionId"), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(session, nil))
}

// SignUp submits the sign-up form.
func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req SignUpInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	session, err := h.service.SignUp(c.UserContext(), c.Params("sessionId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(session, nil))
}

// EnterDigit writes one OTP slot.
func (h *Handler) EnterDigit(c *fiber.Ctx) error {
	var req slotRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	session, hint, err := h.service.EnterDigit(c.UserContext(), c.Params("sessionId"), req.Slot, req.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(session, hint))
}

// Backspace handles a backspace on one OTP slot.
func (h *Handler) Backspace(c *fiber.Ctx) error {
	var req slotRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	session, hint, err := h.service.Backspace(c.UserContext(), c.Params("sessionId"), req.Slot)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(session, hint))
}

// Verify completes the flow and returns the new account with its tokens.
func (h *Handler) Verify(c *fiber.Ctx) error {
	result, err := h.service.Verify(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	resp := verifyResponse{Session: view(result.Session, nil), Tokens: result.Tokens}
	if result.User != nil {
		resp.Account = &accountResponse{ID: result.User.ID, Name: result.User.Name, Email: result.User.Email, Mobile: result.User.Mobile}
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// Resend clears the code and requests a new one.
func (h *Handler) Resend(c *fiber.Ctx) error {
	session, err := h.service.Resend(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(session, &FocusHint{Slot: 0}))
}

// Back navigates to the previous stage.
func (h *Handler) Back(c *fiber.Ctx) error {
	session, err := h.service.Back(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view(session, nil))
}

func view(session *Session, hint *FocusHint) sessionResponse {
	resp := sessionResponse{
		ID:        session.ID,
		Stage:     session.Stage.String(),
		Email:     session.Credentials.Email,
		UpdatedAt: session.UpdatedAt,
		Focus:     hint,
	}
	if session.Stage == StageOtp {
		resp.OTP = &otpView{Slots: session.OTP.Slots, Focus: session.OTP.Focus}
	}
	if a := session.Applicant; a != nil {
		resp.Applicant = &applicantView{Name: a.Name, Email: a.Email, Mobile: a.Mobile}
	}
	return resp
}

func respondError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := Code(err)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		status = http.StatusNotFound
	case IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, ErrCredentialsMismatch),
		errors.Is(err, ErrWrongStage),
		errors.Is(err, ErrFlowComplete),
		errors.Is(err, ErrNoPreviousStage),
		errors.Is(err, ErrStaleSession):
		status = http.StatusConflict
	case errors.Is(err, identity.ErrUserExists):
		status = http.StatusConflict
		code = "account_exists"
	default:
		return fiber.NewError(http.StatusInternalServerError, "internal error")
	}
	return c.Status(status).JSON(errorResponse{Error: code, Message: err.Error()})
}
