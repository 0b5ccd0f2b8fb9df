package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/service"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

// UsersHandler exposes account CRUD endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return fiber.NewError(http.StatusBadRequest, "username, email, password, first_name, last_name required")
	}

	user, err := h.users.Register(c.Context(), service.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Contact:   req.Contact,
		Password:  req.Password,
		RoleID:    domain.RoleID(req.RoleID),
		IsActive:  req.IsActive,
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewSafeUser(user),
	})
}

// List handles GET /users. Admin only; returns sub-admin accounts.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListSubAdmins(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewSafeUsers(users)})
}

// OwnDetails handles GET /users/details.
func (h *UsersHandler) OwnDetails(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.users.GetByUsername(c.Context(), identity.Username)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewSafeUser(user)})
}

// Details handles GET /users/details/:username. Admin only.
func (h *UsersHandler) Details(c *fiber.Ctx) error {
	user, err := h.users.GetSubAdmin(c.Context(), c.Params("username"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewSafeUser(user)})
}

// UpdateOwn handles PATCH /users/update.
func (h *UsersHandler) UpdateOwn(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.Context(), identity.Username, updateInput(req))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewSafeUser(user)})
}

// Update handles PATCH /users/update/:username. Admin only.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.Context(), c.Params("username"), updateInput(req))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewSafeUser(user)})
}

// Activate handles PATCH /users/activate/:username. Admin only.
func (h *UsersHandler) Activate(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

// Deactivate handles PATCH /users/deactivate/:username. Admin only.
func (h *UsersHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *UsersHandler) setActive(c *fiber.Ctx, active bool) error {
	identity, _ := auth.IdentityFromContext(c)

	user, err := h.users.SetActive(c.Context(), c.Params("username"), active, identity)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewSafeUser(user)})
}

// Delete handles DELETE /users/delete/:username. Admin only.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	if err := h.users.Delete(c.Context(), c.Params("username"), identity); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func updateInput(req dto.UpdateUserRequest) service.UpdateUserInput {
	return service.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Contact:   req.Contact,
		Password:  req.Password,
	}
}
