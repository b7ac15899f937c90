package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/society-events/internal/api/dto"
	"github.com/campus-kit/society-events/internal/service"
	"github.com/campus-kit/society-events/internal/validation"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Signup handles POST /user/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if _, err := h.auth.Signup(c.UserContext(), req.Name, req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user created"})
}

// Login handles POST /user/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token, "message": "login successful"})
}

// Logout handles POST /user/logout. Tokens are stateless; the handler
// only confirms the caller presented a valid one.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "logged out"})
}

// ForgotPassword handles POST /user/forgot.
func (h *UsersHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "reset email sent"})
}

// ResetPassword handles POST /user/reset.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	token, err := h.auth.ResetPassword(c.UserContext(), req.Code, req.UserID, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}

// VerifyAccount handles POST /user/verify.
func (h *UsersHandler) VerifyAccount(c *fiber.Ctx) error {
	var req dto.VerifyAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := h.auth.VerifyAccount(c.UserContext(), req.Code, req.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account verified"})
}

// CheckToken handles POST /user/check. The auth middleware already
// rejected invalid tokens by the time this runs.
func (h *UsersHandler) CheckToken(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "token valid"})
}
