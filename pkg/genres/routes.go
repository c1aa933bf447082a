package genres

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/auth"
)

// RegisterRoutesWithGroup registers the genre routes on the given group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		genreService: NewService(db),
	}

	genres := g.Group("/genres")
	genres.GET("", h.list)
	genres.GET("/:slug", h.retrieve)
	genres.POST("", h.create, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	genres.DELETE("/:slug", h.delete, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
}
