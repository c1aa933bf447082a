package reviews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/auth"
	"github.com/critiqhq/critiq/pkg/binder"
	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/models"
)

func newReviewsTestContext(t *testing.T, method, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func setReviewPath(c echo.Context, titleID, reviewID int) {
	c.SetPath("/titles/:title_id/reviews/:id")
	c.SetParamNames("title_id", "id")
	c.SetParamValues(strconv.Itoa(titleID), strconv.Itoa(reviewID))
}

func createReviewFixture(ctx context.Context, t *testing.T, db *bun.DB, svc *Service) (*models.Title, *models.Review, *models.User) {
	t.Helper()

	author := createTestUser(ctx, t, db, "author", models.RoleUser)
	title := createTestTitle(ctx, t, db, "Dune")
	review, err := svc.Create(ctx, CreateReviewOptions{
		TitleID:  title.ID,
		AuthorID: author.ID,
		Text:     "Loved it",
		Score:    9,
	})
	require.NoError(t, err)
	return title, review, author
}

func TestHandlerUpdate_NonAuthorForbidden(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{reviewService: NewService(db)}
	ctx := context.Background()

	title, review, _ := createReviewFixture(ctx, t, db, h.reviewService)
	other := createTestUser(ctx, t, db, "other", models.RoleUser)

	c, _ := newReviewsTestContext(t, http.MethodPatch, `{"score":1}`)
	setReviewPath(c, title.ID, review.ID)
	c.Set(auth.ContextKeyUser, other)

	err := h.update(c)
	assert.ErrorIs(t, err, errcodes.Forbidden("You don't have permission to perform this action"))

	// The review is untouched.
	kept, retrieveErr := h.reviewService.Retrieve(ctx, title.ID, review.ID)
	require.NoError(t, retrieveErr)
	assert.Equal(t, 9, kept.Score)
}

func TestHandlerUpdate_AuthorSucceeds(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{reviewService: NewService(db)}
	ctx := context.Background()

	title, review, author := createReviewFixture(ctx, t, db, h.reviewService)

	c, rr := newReviewsTestContext(t, http.MethodPatch, `{"score":4}`)
	setReviewPath(c, title.ID, review.ID)
	c.Set(auth.ContextKeyUser, author)

	err := h.update(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	updated, err := h.reviewService.Retrieve(ctx, title.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Score)
}

func TestHandlerDelete_ModeratorSucceeds(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{reviewService: NewService(db)}
	ctx := context.Background()

	title, review, _ := createReviewFixture(ctx, t, db, h.reviewService)
	moderator := createTestUser(ctx, t, db, "moderator", models.RoleModerator)

	c, rr := newReviewsTestContext(t, http.MethodDelete, "")
	setReviewPath(c, title.ID, review.ID)
	c.Set(auth.ContextKeyUser, moderator)

	err := h.delete(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	_, err = h.reviewService.Retrieve(ctx, title.ID, review.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Review"))
}

func TestHandlerCreate_DuplicateConflict(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{reviewService: NewService(db)}
	ctx := context.Background()

	title, _, author := createReviewFixture(ctx, t, db, h.reviewService)

	c, _ := newReviewsTestContext(t, http.MethodPost, `{"text":"again","score":5}`)
	c.SetPath("/titles/:title_id/reviews")
	c.SetParamNames("title_id")
	c.SetParamValues(strconv.Itoa(title.ID))
	c.Set(auth.ContextKeyUser, author)

	err := h.create(c)
	assert.ErrorIs(t, err, errcodes.Conflict("You have already reviewed this title"))
}
