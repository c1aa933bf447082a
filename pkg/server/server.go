package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/auth"
	"github.com/critiqhq/critiq/pkg/binder"
	"github.com/critiqhq/critiq/pkg/categories"
	"github.com/critiqhq/critiq/pkg/comments"
	"github.com/critiqhq/critiq/pkg/config"
	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/genres"
	"github.com/critiqhq/critiq/pkg/reviews"
	"github.com/critiqhq/critiq/pkg/titles"
	"github.com/critiqhq/critiq/pkg/users"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	v1 := e.Group("/v1")

	authService := auth.RegisterRoutes(v1, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	users.RegisterRoutesWithGroup(v1, db, authMiddleware)
	categories.RegisterRoutesWithGroup(v1, db, authMiddleware)
	genres.RegisterRoutesWithGroup(v1, db, authMiddleware)
	titles.RegisterRoutesWithGroup(v1, db, authMiddleware)
	reviews.RegisterRoutesWithGroup(v1, db, authMiddleware)
	comments.RegisterRoutesWithGroup(v1, db, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
