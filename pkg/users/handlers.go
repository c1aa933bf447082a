package users

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
	userService *Service
}

type listResponse struct {
	Users []*models.User `json:"users"`
	Total int            `json:"total"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListUsersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	users, total, err := h.userService.List(ctx, ListOptions{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse{Users: users, Total: total})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateUserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Create(ctx, CreateUserOptions{
		Username:  params.Username,
		Email:     params.Email,
		Password:  params.Password,
		Role:      models.Role(params.Role),
		Bio:       params.Bio,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	user, err := h.userService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// replace is a full update. Omitted optional fields are cleared rather than
// preserved.
func (h *handler) replace(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	params := ReplaceUserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	user.Username = params.Username
	user.Email = params.Email
	if params.Role != "" {
		user.Role = models.Role(params.Role)
	}
	user.Bio = params.Bio
	user.FirstName = params.FirstName
	user.LastName = params.LastName

	columns := []string{"username", "email", "role", "bio", "first_name", "last_name"}
	if err := h.userService.Update(ctx, user, UpdateOptions{Columns: columns}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	params := UpdateUserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	columns := []string{}
	if params.Username != nil {
		user.Username = *params.Username
		columns = append(columns, "username")
	}
	if params.Email != nil {
		user.Email = *params.Email
		columns = append(columns, "email")
	}
	if params.Role != nil {
		user.Role = models.Role(*params.Role)
		columns = append(columns, "role")
	}
	if params.Bio != nil {
		user.Bio = params.Bio
		columns = append(columns, "bio")
	}
	if params.FirstName != nil {
		user.FirstName = params.FirstName
		columns = append(columns, "first_name")
	}
	if params.LastName != nil {
		user.LastName = params.LastName
		columns = append(columns, "last_name")
	}

	if err := h.userService.Update(ctx, user, UpdateOptions{Columns: columns}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	if err := h.userService.Delete(ctx, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) me(c echo.Context) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *handler) updateMe(c echo.Context) error {
	ctx := c.Request().Context()

	user := auth.UserFromContext(c)
	if user == nil {
		return errcodes.Unauthorized("Authentication required")
	}

	params := UpdateMePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Username != nil {
		user.Username = *params.Username
		columns = append(columns, "username")
	}
	if params.Email != nil {
		user.Email = *params.Email
		columns = append(columns, "email")
	}
	if params.Bio != nil {
		user.Bio = params.Bio
		columns = append(columns, "bio")
	}
	if params.FirstName != nil {
		user.FirstName = params.FirstName
		columns = append(columns, "first_name")
	}
	if params.LastName != nil {
		user.LastName = params.LastName
		columns = append(columns, "last_name")
	}

	if err := h.userService.Update(ctx, user, UpdateOptions{Columns: columns}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
