package comments

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/auth"
)

// RegisterRoutesWithGroup registers the comment routes, nested under reviews,
// on the given group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		commentService: NewService(db),
	}

	comments := g.Group("/titles/:title_id/reviews/:review_id/comments")
	comments.GET("", h.list)
	comments.GET("/:id", h.retrieve)
	comments.POST("", h.create, authMiddleware.Authenticate)
	comments.PUT("/:id", h.replace, authMiddleware.Authenticate)
	comments.PATCH("/:id", h.update, authMiddleware.Authenticate)
	comments.DELETE("/:id", h.delete, authMiddleware.Authenticate)
}
