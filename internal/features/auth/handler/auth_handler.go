package handler

import (
	"errors"
	"net/http"

	"nearzy/internal/core/logger"
	"nearzy/internal/core/server"
	"nearzy/internal/features/auth/domain"
	"nearzy/internal/features/auth/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for signing in and out.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// CredentialsRequest is the body of the email sign-in and sign-up routes.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PhoneRequest is the body of POST /auth/phone.
type PhoneRequest struct {
	// Phone is the 10-digit number without country code.
	Phone string `json:"phone"`
	// RecaptchaToken is the client-side challenge response.
	RecaptchaToken string `json:"recaptcha_token"`
}

// PhoneResponse carries the handle to confirm the OTP with.
type PhoneResponse struct {
	VerificationID string `json:"verification_id"`
}

// ConfirmRequest is the body of POST /auth/phone/confirm.
type ConfirmRequest struct {
	VerificationID string `json:"verification_id"`
	Code           string `json:"code"`
}

// ResetRequest is the body of POST /auth/password-reset.
type ResetRequest struct {
	Email string `json:"email"`
}

// Login handles POST /auth/login.
// @Summary Sign in with email
// @Tags Auth
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} service.AuthResult
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.service.Login(c.UserContext(), server.SessionID(c), req.Email, req.Password)
	if err != nil {
		return h.fail(c, "Login failed", err)
	}
	return c.Status(http.StatusOK).JSON(res)
}

// SignUp handles POST /auth/signup.
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} service.AuthResult
// @Failure 400 {object} server.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.service.SignUp(c.UserContext(), server.SessionID(c), req.Email, req.Password)
	if err != nil {
		return h.fail(c, "Sign up failed", err)
	}
	return c.Status(http.StatusCreated).JSON(res)
}

// StartPhone handles POST /auth/phone.
// @Summary Send an OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body PhoneRequest true "Phone number"
// @Success 200 {object} PhoneResponse
// @Failure 400 {object} server.ErrorResponse
// @Router /auth/phone [post]
func (h *AuthHandler) StartPhone(c *fiber.Ctx) error {
	var req PhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	handle, err := h.service.StartPhoneSignIn(c.UserContext(), req.Phone, req.RecaptchaToken)
	if err != nil {
		return h.fail(c, "Failed to send OTP", err)
	}
	return c.Status(http.StatusOK).JSON(PhoneResponse{VerificationID: handle})
}

// ConfirmPhone handles POST /auth/phone/confirm.
// @Summary Confirm an OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param request body ConfirmRequest true "OTP"
// @Success 200 {object} service.AuthResult
// @Failure 400 {object} server.ErrorResponse
// @Router /auth/phone/confirm [post]
func (h *AuthHandler) ConfirmPhone(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.service.ConfirmPhoneSignIn(c.UserContext(), server.SessionID(c), req.VerificationID, req.Code)
	if err != nil {
		return h.fail(c, "OTP confirmation failed", err)
	}
	return c.Status(http.StatusOK).JSON(res)
}

// ResetPassword handles POST /auth/password-reset.
// @Summary Send a password reset email
// @Tags Auth
// @Accept json
// @Param request body ResetRequest true "Email"
// @Success 204
// @Failure 400 {object} server.ErrorResponse
// @Router /auth/password-reset [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	if err := h.service.ResetPassword(c.UserContext(), req.Email); err != nil {
		return h.fail(c, "Password reset failed", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Logout handles POST /auth/logout.
// @Summary Sign out
// @Tags Auth
// @Param X-Session-ID header string false "Session ID"
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.UserContext(), server.SessionID(c)); err != nil {
		return h.fail(c, "Logout failed", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me.
// @Summary Get the signed-in user
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} domain.User
// @Failure 401 {object} server.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return server.Fail(c, http.StatusUnauthorized, "Sign in required")
	}
	return c.Status(http.StatusOK).JSON(user)
}

func (h *AuthHandler) fail(c *fiber.Ctx, msg string, err error) error {
	var ierr *domain.IdentityError
	switch {
	case errors.As(err, &ierr):
		status := http.StatusUnauthorized
		if ierr.Status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		logger.Get().Warn(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
		return server.Fail(c, status, ierr.Message)
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrPasswordRequired):
		return server.Fail(c, http.StatusBadRequest, err.Error())
	}

	logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusInternalServerError, "Internal server error")
}
