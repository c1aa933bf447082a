package users

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/auth"
)

// RegisterRoutesWithGroup registers the user routes on the given group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		userService: NewService(db),
	}

	users := g.Group("/users", authMiddleware.Authenticate)
	users.GET("/me", h.me)
	users.PATCH("/me", h.updateMe)

	users.GET("", h.list, authMiddleware.RequireAdmin)
	users.POST("", h.create, authMiddleware.RequireAdmin)
	users.GET("/:id", h.retrieve, authMiddleware.RequireAdmin)
	users.PUT("/:id", h.replace, authMiddleware.RequireAdmin)
	users.PATCH("/:id", h.update, authMiddleware.RequireAdmin)
	users.DELETE("/:id", h.delete, authMiddleware.RequireAdmin)
}
