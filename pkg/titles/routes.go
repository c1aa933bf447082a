package titles

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/auth"
)

// RegisterRoutesWithGroup registers the title routes on the given group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		titleService: NewService(db),
	}

	titles := g.Group("/titles")
	titles.GET("", h.list)
	titles.GET("/:id", h.retrieve)
	titles.POST("", h.create, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	titles.PUT("/:id", h.replace, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	titles.PATCH("/:id", h.update, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	titles.DELETE("/:id", h.delete, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
}
