package categories

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/auth"
)

// RegisterRoutesWithGroup registers the category routes on the given group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		categoryService: NewService(db),
	}

	categories := g.Group("/categories")
	categories.GET("", h.list)
	categories.GET("/:slug", h.retrieve)
	categories.POST("", h.create, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	categories.DELETE("/:slug", h.delete, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
}
