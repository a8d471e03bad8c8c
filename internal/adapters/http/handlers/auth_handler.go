package handlers

import (
	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
	"github.com/Hllyys/FullStackCase/internal/core/services"
	"github.com/Hllyys/FullStackCase/internal/pkg/response"
	"github.com/Hllyys/FullStackCase/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	FullName  string `json:"fullName" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	RoleID    uint   `json:"roleId"`
	ManagerID *uint  `json:"managerId"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshRequest carries the refresh token for refresh and logout
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required,min=10"`
}

// registeredUser is the trimmed projection returned by register and login
type registeredUser struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	RoleID   uint   `json:"roleId"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validate.Struct(&req); fields != nil {
		return response.ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid request body", fields)
	}

	// Self-registration defaults to the Staff role
	if req.RoleID == 0 {
		req.RoleID = models.RoleStaff
	}

	user, err := h.authService.Register(c.Context(), &services.RegisterInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		RoleID:    req.RoleID,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}

	return response.OK(c, fiber.Map{
		"user": registeredUser{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			RoleID:   user.RoleID,
		},
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validate.Struct(&req); fields != nil {
		return response.ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid request body", fields)
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.IP(),
	})
	if err != nil {
		return err
	}

	return response.OK(c, fiber.Map{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user": registeredUser{
			ID:       result.User.ID,
			FullName: result.User.FullName,
			Email:    result.User.Email,
			RoleID:   result.User.RoleID,
		},
	})
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validate.Struct(&req); fields != nil {
		return response.ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid request body", fields)
	}

	result, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"accessToken": result.AccessToken})
}

// LogoutAll revokes every active session of the authenticated user
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"success": true})
}

// Logout revokes the refresh token. Idempotent.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validate.Struct(&req); fields != nil {
		return response.ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid request body", fields)
	}

	if err := h.authService.Logout(c.Context(), req.RefreshToken); err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"success": true})
}
