package reviews

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/critiqhq/critiq/pkg/auth"
	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/models"
)

type handler struct {
	reviewService *Service
}

type listResponse struct {
	Reviews []*models.Review `json:"reviews"`
	Total   int              `json:"total"`
}

func titleIDFromPath(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("title_id"))
	if err != nil {
		return 0, errcodes.NotFound("Title")
	}
	return id, nil
}

func reviewIDFromPath(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errcodes.NotFound("Review")
	}
	return id, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	titleID, err := titleIDFromPath(c)
	if err != nil {
		return err
	}

	params := ListReviewsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	reviews, total, err := h.reviewService.List(ctx, titleID, ListOptions{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse{Reviews: reviews, Total: total})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	titleID, err := titleIDFromPath(c)
	if err != nil {
		return err
	}

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	params := CreateReviewPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.reviewService.Create(ctx, CreateReviewOptions{
		TitleID:  titleID,
		AuthorID: user.ID,
		Text:     params.Text,
		Score:    params.Score,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	titleID, err := titleIDFromPath(c)
	if err != nil {
		return err
	}
	reviewID, err := reviewIDFromPath(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.Retrieve(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, review)
}

// replace is a full update of the review's text and score.
func (h *handler) replace(c echo.Context) error {
	ctx := c.Request().Context()

	titleID, err := titleIDFromPath(c)
	if err != nil {
		return err
	}
	reviewID, err := reviewIDFromPath(c)
	if err != nil {
		return err
	}

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	review, err := h.reviewService.Retrieve(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !user.CanEditResource(review.AuthorID) {
		return errcodes.Forbidden("You don't have permission to perform this action")
	}

	params := CreateReviewPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	review.Text = params.Text
	review.Score = params.Score

	if err := h.reviewService.Update(ctx, review, UpdateOptions{Columns: []string{"text", "score"}}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, review)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	titleID, err := titleIDFromPath(c)
	if err != nil {
		return err
	}
	reviewID, err := reviewIDFromPath(c)
	if err != nil {
		return err
	}

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	review, err := h.reviewService.Retrieve(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !user.CanEditResource(review.AuthorID) {
		return errcodes.Forbidden("You don't have permission to perform this action")
	}

	params := UpdateReviewPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Text != nil {
		review.Text = *params.Text
		columns = append(columns, "text")
	}
	if params.Score != nil {
		review.Score = *params.Score
		columns = append(columns, "score")
	}

	if err := h.reviewService.Update(ctx, review, UpdateOptions{Columns: columns}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, review)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	titleID, err := titleIDFromPath(c)
	if err != nil {
		return err
	}
	reviewID, err := reviewIDFromPath(c)
	if err != nil {
		return err
	}

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	review, err := h.reviewService.Retrieve(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !user.CanEditResource(review.AuthorID) {
		return errcodes.Forbidden("You don't have permission to perform this action")
	}

	if err := h.reviewService.Delete(ctx, review.ID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
