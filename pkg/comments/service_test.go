package comments

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/critiqhq/critiq/pkg/database"
	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/migrations"
	"github.com/critiqhq/critiq/pkg/models"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	database.RegisterModels(db)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

type fixture struct {
	user   *models.User
	title  *models.Title
	review *models.Review
}

func newFixture(ctx context.Context, t *testing.T, db *bun.DB) fixture {
	t.Helper()

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	title := &models.Title{
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        "Dune",
		Year:        2000,
		Description: "No description",
	}
	_, err = db.NewInsert().Model(title).Exec(ctx)
	require.NoError(t, err)

	review := &models.Review{
		CreatedAt: now,
		UpdatedAt: now,
		TitleID:   title.ID,
		AuthorID:  user.ID,
		Text:      "review",
		Score:     8,
	}
	_, err = db.NewInsert().Model(review).Exec(ctx)
	require.NoError(t, err)

	return fixture{user: user, title: title, review: review}
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := newFixture(ctx, t, db)

	comment, err := svc.Create(ctx, CreateCommentOptions{
		TitleID:  f.title.ID,
		ReviewID: f.review.ID,
		AuthorID: f.user.ID,
		Text:     "Agreed",
	})
	require.NoError(t, err)
	assert.Equal(t, f.review.ID, comment.ReviewID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "alice", comment.Author.Username)
}

func TestServiceCreate_MissingReview(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := newFixture(ctx, t, db)

	_, err := svc.Create(ctx, CreateCommentOptions{
		TitleID:  f.title.ID,
		ReviewID: 9999,
		AuthorID: f.user.ID,
		Text:     "Agreed",
	})
	assert.ErrorIs(t, err, errcodes.NotFound("Review"))

	// A review id that exists under a different title is still not found.
	otherTitle := &models.Title{
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Name:        "Casablanca",
		Year:        1942,
		Description: "No description",
	}
	_, err = db.NewInsert().Model(otherTitle).Exec(ctx)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCommentOptions{
		TitleID:  otherTitle.ID,
		ReviewID: f.review.ID,
		AuthorID: f.user.ID,
		Text:     "Agreed",
	})
	assert.ErrorIs(t, err, errcodes.NotFound("Review"))
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	f := newFixture(ctx, t, db)

	for range [3]struct{}{} {
		now := time.Now()
		comment := &models.Comment{
			CreatedAt: now,
			UpdatedAt: now,
			ReviewID:  f.review.ID,
			AuthorID:  f.user.ID,
			Text:      "x",
		}
		_, err := db.NewInsert().Model(comment).Exec(ctx)
		require.NoError(t, err)
	}

	comments, total, err := svc.List(ctx, f.title.ID, f.review.ID, ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, comments, 2)

	_, _, err = svc.List(ctx, f.title.ID, 9999, ListOptions{})
	assert.ErrorIs(t, err, errcodes.NotFound("Review"))
}
