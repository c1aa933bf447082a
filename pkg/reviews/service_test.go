package reviews

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

func createTestUser(ctx context.Context, t *testing.T, db *bun.DB, username string, role models.Role) *models.User {
	t.Helper()

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)
	return user
}

func createTestTitle(ctx context.Context, t *testing.T, db *bun.DB, name string) *models.Title {
	t.Helper()

	now := time.Now()
	title := &models.Title{
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        name,
		Year:        2000,
		Description: "No description",
	}
	_, err := db.NewInsert().Model(title).Exec(ctx)
	require.NoError(t, err)
	return title
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "alice", models.RoleUser)
	title := createTestTitle(ctx, t, db, "Dune")

	review, err := svc.Create(ctx, CreateReviewOptions{
		TitleID:  title.ID,
		AuthorID: user.ID,
		Text:     "Loved it",
		Score:    9,
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, review.AuthorID)
	require.NotNil(t, review.Author)
	assert.Equal(t, "alice", review.Author.Username)
}

func TestServiceCreate_MissingTitle(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "alice", models.RoleUser)

	_, err := svc.Create(ctx, CreateReviewOptions{
		TitleID:  9999,
		AuthorID: user.ID,
		Text:     "Loved it",
		Score:    9,
	})
	assert.ErrorIs(t, err, errcodes.NotFound("Title"))
}

func TestServiceCreate_DuplicateAuthor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	alice := createTestUser(ctx, t, db, "alice", models.RoleUser)
	bob := createTestUser(ctx, t, db, "bob", models.RoleUser)
	title := createTestTitle(ctx, t, db, "Dune")

	_, err := svc.Create(ctx, CreateReviewOptions{
		TitleID:  title.ID,
		AuthorID: alice.ID,
		Text:     "Loved it",
		Score:    9,
	})
	require.NoError(t, err)

	// One review per user per title.
	_, err = svc.Create(ctx, CreateReviewOptions{
		TitleID:  title.ID,
		AuthorID: alice.ID,
		Text:     "Changed my mind",
		Score:    3,
	})
	assert.ErrorIs(t, err, errcodes.Conflict("You have already reviewed this title"))

	// A different user reviewing the same title is fine.
	_, err = svc.Create(ctx, CreateReviewOptions{
		TitleID:  title.ID,
		AuthorID: bob.ID,
		Text:     "It was fine",
		Score:    6,
	})
	assert.NoError(t, err)
}

func TestServiceList_ScopedToTitle(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	alice := createTestUser(ctx, t, db, "alice", models.RoleUser)
	dune := createTestTitle(ctx, t, db, "Dune")
	other := createTestTitle(ctx, t, db, "Casablanca")

	_, err := svc.Create(ctx, CreateReviewOptions{TitleID: dune.ID, AuthorID: alice.ID, Text: "x", Score: 9})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateReviewOptions{TitleID: other.ID, AuthorID: alice.ID, Text: "x", Score: 5})
	require.NoError(t, err)

	reviews, total, err := svc.List(ctx, dune.ID, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, reviews, 1)
	assert.Equal(t, dune.ID, reviews[0].TitleID)

	_, _, err = svc.List(ctx, 9999, ListOptions{})
	assert.ErrorIs(t, err, errcodes.NotFound("Title"))
}

func TestServiceDelete_CascadesComments(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	alice := createTestUser(ctx, t, db, "alice", models.RoleUser)
	title := createTestTitle(ctx, t, db, "Dune")

	review, err := svc.Create(ctx, CreateReviewOptions{TitleID: title.ID, AuthorID: alice.ID, Text: "x", Score: 9})
	require.NoError(t, err)

	now := time.Now()
	comment := &models.Comment{
		CreatedAt: now,
		UpdatedAt: now,
		ReviewID:  review.ID,
		AuthorID:  alice.ID,
		Text:      "x",
	}
	_, err = db.NewInsert().Model(comment).Exec(ctx)
	require.NoError(t, err)

	err = svc.Delete(ctx, review.ID)
	require.NoError(t, err)

	commentCount, err := db.NewSelect().Model((*models.Comment)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, commentCount)
}
