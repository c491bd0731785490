// Admin endpoints: user listing and role assignment. Route-level
// middleware already requires the admin role claim; the role
// mutation additionally re-reads the caller's persisted role, since
// an admin may have been demoted after their token was issued.
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
	"github.com/harshithcodes/assignment-scheduler/internal/service"
)

// AdminHandler bundles dependencies for admin operations.
type AdminHandler struct {
	Users *repository.UserRepo
	Roles *service.RoleService
}

func NewAdminHandler(users *repository.UserRepo, roles *service.RoleService) *AdminHandler {
	if users == nil || roles == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users, Roles: roles}
}

type adminUser struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// ListUsers handles GET /v1/admin/users. It returns every account
// ordered by creation time.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		out = append(out, adminUser{
			ID: u.ID, Email: u.Email, Name: u.Name, Picture: u.Picture,
			Role: u.Role, CreatedAt: u.CreatedAt, LastLoginAt: u.LastLoginAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

type setRoleReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SetRole handles PUT /v1/admin/users/role. The target email does
// not need an existing account: the assignment is stored either way
// and is picked up when the user first signs in. The caller's
// persisted role is re-read here instead of trusting the token
// claim, and changing one's own role is rejected outright.
func (h *AdminHandler) SetRole(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || strings.TrimSpace(req.Role) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and role required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	caller, err := h.Users.GetByID(ctx, callerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load caller failed"})
	}
	if caller.Role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Roles.SetRole(ctx, caller.Email, req.Email, req.Role); err != nil {
		switch err {
		case repository.ErrInvalidRole:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
		case repository.ErrSelfRoleChange:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot change own role"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"email": req.Email, "role": req.Role})
}
