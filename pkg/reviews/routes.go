package reviews

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/auth"
)

// RegisterRoutesWithGroup registers the review routes, nested under titles,
// on the given group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		reviewService: NewService(db),
	}

	reviews := g.Group("/titles/:title_id/reviews")
	reviews.GET("", h.list)
	reviews.GET("/:id", h.retrieve)
	reviews.POST("", h.create, authMiddleware.Authenticate)
	reviews.PUT("/:id", h.replace, authMiddleware.Authenticate)
	reviews.PATCH("/:id", h.update, authMiddleware.Authenticate)
	reviews.DELETE("/:id", h.delete, authMiddleware.Authenticate)
}
