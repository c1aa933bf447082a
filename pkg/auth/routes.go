package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the auth routes on the given group and returns the
// auth service for middleware construction.
func RegisterRoutes(g *echo.Group, db *bun.DB, jwtSecret string) *Service {
	authService := NewService(db, jwtSecret)

	h := &handler{
		authService: authService,
	}

	auth := g.Group("/auth")
	auth.POST("/signup", h.signup)
	auth.POST("/token", h.token)

	return authService
}
