package handlers

import (
	"strconv"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/repositories"
	"github.com/Hllyys/FullStackCase/internal/core/services"
	"github.com/Hllyys/FullStackCase/internal/pkg/pagination"
	"github.com/Hllyys/FullStackCase/internal/pkg/response"
	"github.com/Hllyys/FullStackCase/internal/pkg/tree"
	"github.com/Hllyys/FullStackCase/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user directory endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// accepted sort fields for the listing query
var allowedSortBy = map[string]bool{
	"fullName":  true,
	"email":     true,
	"createdAt": true,
	"role":      true,
	"status":    true,
}

// ListUsers handles GET /users with pagination, sorting, filtering and
// manager-hierarchy nesting controlled by the depth query value.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	sortBy := c.Query("sortBy", "createdAt")
	if !allowedSortBy[sortBy] {
		return response.BadRequest(c, "Invalid query params")
	}
	sortOrder := c.Query("sortOrder", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		return response.BadRequest(c, "Invalid query params")
	}
	depth, ok := tree.ParseDepth(c.Query("depth"))
	if !ok {
		return response.BadRequest(c, "Invalid query params")
	}

	out, err := h.userService.ListUsers(c.Context(), &services.ListUsersInput{
		Page:      params.Page,
		Size:      params.Size,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Depth:     depth,
		Filters: repositories.ListFilters{
			FullName: c.Query("filters[fullName]"),
			Email:    c.Query("filters[email]"),
			Role:     c.Query("filters[role]"),
			Status:   c.Query("filters[status]"),
		},
	})
	if err != nil {
		return err
	}

	return response.OK(c, out)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.Context(), uint(id))
	if err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"data": user})
}

// CreateUserRequest represents admin user creation body
type CreateUserRequest struct {
	FullName  string  `json:"fullName" validate:"required,min=1"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	RoleID    uint    `json:"roleId" validate:"required"`
	IsActive  *bool   `json:"isActive"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	ManagerID *uint   `json:"managerId"`
}

// UpdateUserRequest represents a partial update body. managerId: 0 clears the
// manager link.
type UpdateUserRequest struct {
	FullName  *string `json:"fullName" validate:"omitempty,min=2"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	RoleID    *uint   `json:"roleId"`
	IsActive  *bool   `json:"isActive"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	ManagerID *uint   `json:"managerId"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validate.Struct(&req); fields != nil {
		return response.ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid request body", fields)
	}

	user, err := h.userService.CreateUser(c.Context(), &services.CreateUserInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		RoleID:    req.RoleID,
		ManagerID: req.ManagerID,
		IsActive:  req.IsActive,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}

	return response.Created(c, user)
}

// UpdateUser handles PUT and PATCH /users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validate.Struct(&req); fields != nil {
		return response.ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid request body", fields)
	}

	user, err := h.userService.UpdateUser(c.Context(), uint(id), &services.UpdateUserInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		RoleID:    req.RoleID,
		IsActive:  req.IsActive,
		AvatarURL: req.AvatarURL,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"data": user})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUser(c.Context(), uint(id)); err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"success": true})
}

// GetReports handles GET /users/:id/reports - the flat transitive report
// list of a manager.
func (h *UserHandler) GetReports(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	reports, err := h.userService.GetAllReports(c.Context(), uint(id))
	if err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"data": reports})
}
