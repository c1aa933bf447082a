package categories

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/critiqhq/critiq/pkg/models"
)

type handler struct {
	categoryService *Service
}

type listResponse struct {
	Categories []*models.Category `json:"categories"`
	Total      int                `json:"total"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListCategoriesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	categories, total, err := h.categoryService.List(ctx, ListOptions{
		Search: params.Search,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse{Categories: categories, Total: total})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateCategoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.categoryService.Create(ctx, CreateCategoryOptions{
		Name: params.Name,
		Slug: params.Slug,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	category, err := h.categoryService.RetrieveBySlug(ctx, c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, category)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.categoryService.Delete(ctx, c.Param("slug")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
