package genres

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/critiqhq/critiq/pkg/models"
)

type handler struct {
	genreService *Service
}

type listResponse struct {
	Genres []*models.Genre `json:"genres"`
	Total  int             `json:"total"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListGenresQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	genres, total, err := h.genreService.List(ctx, ListOptions{
		Search: params.Search,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse{Genres: genres, Total: total})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateGenrePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	genre, err := h.genreService.Create(ctx, CreateGenreOptions{
		Name: params.Name,
		Slug: params.Slug,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, genre)
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	genre, err := h.genreService.RetrieveBySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, genre)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.genreService.Delete(ctx, c.Param("slug")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
