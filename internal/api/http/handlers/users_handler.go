package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/servicelink/admin-service/internal/api/dto"
	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/service"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

// UsersHandler exposes login and credential administration endpoints.
type UsersHandler struct {
	auth        *service.AuthService
	credentials *service.CredentialService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, credentials *service.CredentialService) *UsersHandler {
	return &UsersHandler{auth: authService, credentials: credentials}
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// SetPassword handles POST /admin/set-password.
func (h *UsersHandler) SetPassword(c *fiber.Ctx) error {
	var req dto.SetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.credentials.SetPassword(c.UserContext(), req.Email, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "password updated"}})
}

// CreateAdmin handles POST /admin/create-admin.
func (h *UsersHandler) CreateAdmin(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.credentials.CreateAdminUser(c.UserContext(), service.CreateAdminInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": user})
}

// ChangePassword handles POST /admin/users/change-password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.credentials.ChangeUserPassword(c.UserContext(), auth.CallerFromContext(c), req.UserID, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "password changed"}})
}

// parseBody decodes the JSON body into req and validates its tags.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(req)
}
