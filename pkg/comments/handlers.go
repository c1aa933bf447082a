package comments

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
	commentService *Service
}

type listResponse struct {
	Comments []*models.Comment `json:"comments"`
	Total    int               `json:"total"`
}

func pathID(c echo.Context, name, resource string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, errcodes.NotFound(resource)
	}
	return id, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	titleID, err := pathID(c, "title_id", "Title")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "review_id", "Review")
	if err != nil {
		return err
	}

	params := ListCommentsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	comments, total, err := h.commentService.List(ctx, titleID, reviewID, ListOptions{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse{Comments: comments, Total: total})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	titleID, err := pathID(c, "title_id", "Title")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "review_id", "Review")
	if err != nil {
		return err
	}

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	params := CreateCommentPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	comment, err := h.commentService.Create(ctx, CreateCommentOptions{
		TitleID:  titleID,
		ReviewID: reviewID,
		AuthorID: user.ID,
		Text:     params.Text,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	reviewID, err := pathID(c, "review_id", "Review")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id", "Comment")
	if err != nil {
		return err
	}

	comment, err := h.commentService.Retrieve(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, comment)
}

// replace is a full update of the comment's text.
func (h *handler) replace(c echo.Context) error {
	ctx := c.Request().Context()

	reviewID, err := pathID(c, "review_id", "Review")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id", "Comment")
	if err != nil {
		return err
	}

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	comment, err := h.commentService.Retrieve(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	if !user.CanEditResource(comment.AuthorID) {
		return errcodes.Forbidden("You don't have permission to perform this action")
	}

	params := CreateCommentPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	comment.Text = params.Text

	if err := h.commentService.Update(ctx, comment, UpdateOptions{Columns: []string{"text"}}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	reviewID, err := pathID(c, "review_id", "Review")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id", "Comment")
	if err != nil {
		return err
	}

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	comment, err := h.commentService.Retrieve(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	if !user.CanEditResource(comment.AuthorID) {
		return errcodes.Forbidden("You don't have permission to perform this action")
	}

	params := UpdateCommentPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Text != nil {
		comment.Text = *params.Text
		columns = append(columns, "text")
	}

	if err := h.commentService.Update(ctx, comment, UpdateOptions{Columns: columns}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	reviewID, err := pathID(c, "review_id", "Review")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id", "Comment")
	if err != nil {
		return err
	}

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	comment, err := h.commentService.Retrieve(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	if !user.CanEditResource(comment.AuthorID) {
		return errcodes.Forbidden("You don't have permission to perform this action")
	}

	if err := h.commentService.Delete(ctx, comment.ID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
