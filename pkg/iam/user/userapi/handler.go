package userapi

import (
	"github.com/Abraxas-365/hrms/pkg/httpx"
	"github.com/Abraxas-365/hrms/pkg/iam/auth"
	"github.com/Abraxas-365/hrms/pkg/iam/scopes"
	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// UserHandlers expone la gestión del personal (HR, admins, entrevistadores).
type UserHandlers struct {
	service *usersrv.UserService
}

func NewUserHandlers(service *usersrv.UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

func (h *UserHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.AuthMiddleware) {
	users := router.Group("/users", authMiddleware.Authenticate())

	users.Post("/", authMiddleware.RequireScope(scopes.ScopeUsersWrite), h.CreateUser)
	users.Get("/", authMiddleware.RequireScope(scopes.ScopeUsersRead), h.ListUsers)
	users.Get("/:id", authMiddleware.RequireScope(scopes.ScopeUsersRead), h.GetUser)
	users.Put("/:id", authMiddleware.RequireScope(scopes.ScopeUsersWrite), h.UpdateUser)
	users.Delete("/:id", authMiddleware.RequireScope(scopes.ScopeUsersDelete), h.DeleteUser)
}

func (h *UserHandlers) CreateUser(c *fiber.Ctx) error {
	var req user.CreateUserRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	u, err := h.service.CreateUser(c.Context(), req)
	if err != nil {
		return err
	}
	return httpx.Created(c, u.ToDTO())
}

func (h *UserHandlers) ListUsers(c *fiber.Ctx) error {
	list, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return httpx.OK(c, list)
}

func (h *UserHandlers) GetUser(c *fiber.Ctx) error {
	u, err := h.service.GetUserByID(c.Context(), kernel.NewUserID(c.Params("id")))
	if err != nil {
		return err
	}
	return httpx.OK(c, u.ToDTO())
}

func (h *UserHandlers) UpdateUser(c *fiber.Ctx) error {
	var req user.UpdateUserRequest
	if err := httpx.ParseBody(c, &req); err != nil {
		return err
	}
	u, err := h.service.UpdateUser(c.Context(), kernel.NewUserID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return httpx.OK(c, u.ToDTO())
}

// DeleteUser refuses interviewers that still own rounds or sessions.
func (h *UserHandlers) DeleteUser(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}
	id := kernel.NewUserID(c.Params("id"))
	if *authCtx.UserID == id {
		return user.ErrInvalidUser().WithDetail("reason", "cannot delete your own account")
	}
	if err := h.service.DeleteUser(c.Context(), id); err != nil {
		return err
	}
	return httpx.Message(c, "User deleted successfully")
}
