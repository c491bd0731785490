// Package router registers the HTTP routes and their middleware
// chains. Role requirements per group:
//
//	/v1/auth/*            – no authentication
//	/v1/me, /v1/faculties – any authenticated role
//	/v1/slots*            – faculty or admin (creation/deletion), scholar (booking)
//	/v1/admin/*           – admin only
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/harshithcodes/assignment-scheduler/internal/config"
	"github.com/harshithcodes/assignment-scheduler/internal/handler"
	"github.com/harshithcodes/assignment-scheduler/internal/middleware"
	"github.com/harshithcodes/assignment-scheduler/internal/model"
)

// Handlers groups the handler sets wired in main.
type Handlers struct {
	Auth    *handler.AuthHandler
	Admin   *handler.AdminHandler
	Faculty *handler.FacultyHandler
	Scholar *handler.ScholarHandler
	Browse  *handler.BrowseHandler
}

// Register wires every route onto the Echo instance. rdb may be nil,
// in which case the cache and rate limiter degrade to no-ops.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	cache := middleware.Cache(config.LoadCacheConfig(), rdb)

	// Unauthenticated session endpoints.
	authGroup := e.Group("/v1/auth", limiter)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)

	// Everything else requires a valid access token.
	api := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), limiter)

	any := api.Group("", middleware.RequireRole(model.RoleScholar, model.RoleFaculty, model.RoleAdmin))
	any.GET("/me", h.Auth.Me)
	any.GET("/faculties", h.Browse.ListFaculties, cache)
	any.GET("/faculties/:id/slots", h.Browse.ListFacultySlots, cache)

	faculty := api.Group("/slots", middleware.RequireRole(model.RoleFaculty, model.RoleAdmin))
	faculty.POST("", h.Faculty.CreateSlot)
	faculty.GET("/mine", h.Faculty.ListMySlots)
	faculty.DELETE("/:id", h.Faculty.DeleteSlot)

	scholar := api.Group("/slots", middleware.RequireRole(model.RoleScholar))
	scholar.POST("/:id/book", h.Scholar.BookSlot)

	admin := api.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", h.Admin.ListUsers)
	admin.PUT("/users/role", h.Admin.SetRole)
}
