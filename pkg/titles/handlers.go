package titles

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/models"
)

type handler struct {
	titleService *Service
}

type listResponse struct {
	Titles []*models.Title `json:"titles"`
	Total  int             `json:"total"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListTitlesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	titles, total, err := h.titleService.List(ctx, ListOptions{
		Genre:    params.Genre,
		Category: params.Category,
		Name:     params.Name,
		Year:     params.Year,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse{Titles: titles, Total: total})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateTitlePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	title, err := h.titleService.Create(ctx, CreateTitleOptions{
		Name:         params.Name,
		Year:         params.Year,
		Description:  params.Description,
		CategorySlug: params.Category,
		GenreSlugs:   params.Genre,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, title)
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Title")
	}

	title, err := h.titleService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, title)
}

// replace is a full update. Omitted optional fields are reset to their
// defaults rather than preserved.
func (h *handler) replace(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Title")
	}

	params := CreateTitlePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	description := DefaultDescription
	if params.Description != nil && *params.Description != "" {
		description = *params.Description
	}
	categorySlug := ""
	if params.Category != nil {
		categorySlug = *params.Category
	}

	title, err := h.titleService.Update(ctx, id, UpdateTitleOptions{
		Name:         &params.Name,
		Year:         &params.Year,
		Description:  &description,
		CategorySlug: &categorySlug,
		GenreSlugs:   params.Genre,
		ClearGenres:  true,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, title)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Title")
	}

	params := UpdateTitlePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	title, err := h.titleService.Update(ctx, id, UpdateTitleOptions{
		Name:         params.Name,
		Year:         params.Year,
		Description:  params.Description,
		CategorySlug: params.Category,
		GenreSlugs:   params.Genre,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, title)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Title")
	}

	if err := h.titleService.Delete(ctx, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
