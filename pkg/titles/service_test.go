package titles

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

func createCategory(ctx context.Context, t *testing.T, db *bun.DB, name, slug string) *models.Category {
	t.Helper()

	now := time.Now()
	category := &models.Category{CreatedAt: now, UpdatedAt: now, Name: name, Slug: slug}
	_, err := db.NewInsert().Model(category).Exec(ctx)
	require.NoError(t, err)
	return category
}

func createGenre(ctx context.Context, t *testing.T, db *bun.DB, name, slug string) *models.Genre {
	t.Helper()

	now := time.Now()
	genre := &models.Genre{CreatedAt: now, UpdatedAt: now, Name: name, Slug: slug}
	_, err := db.NewInsert().Model(genre).Exec(ctx)
	require.NoError(t, err)
	return genre
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestServiceCreate_ResolvesSlugs(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	createCategory(ctx, t, db, "Movies", "movies")
	createGenre(ctx, t, db, "Science Fiction", "sci-fi")
	createGenre(ctx, t, db, "Drama", "drama")

	title, err := svc.Create(ctx, CreateTitleOptions{
		Name:         "Dune",
		Year:         2021,
		CategorySlug: strPtr("movies"),
		GenreSlugs:   []string{"sci-fi", "drama"},
	})
	require.NoError(t, err)

	require.NotNil(t, title.Category)
	assert.Equal(t, "movies", title.Category.Slug)
	require.Len(t, title.Genres, 2)
	assert.Equal(t, DefaultDescription, title.Description)
	assert.Nil(t, title.Rating)
}

func TestServiceCreate_UnknownSlug(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateTitleOptions{
		Name:         "Dune",
		Year:         2021,
		CategorySlug: strPtr("movies"),
	})
	assert.ErrorIs(t, err, errcodes.ValidationError("Unknown category slug"))

	_, err = svc.Create(ctx, CreateTitleOptions{
		Name:       "Dune",
		Year:       2021,
		GenreSlugs: []string{"sci-fi"},
	})
	assert.ErrorIs(t, err, errcodes.ValidationError("Unknown genre slug"))

	// Nothing should have been written.
	count, err := db.NewSelect().Model((*models.Title)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestServiceList_Filters(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	createCategory(ctx, t, db, "Movies", "movies")
	createCategory(ctx, t, db, "Books", "books")
	createGenre(ctx, t, db, "Science Fiction", "sci-fi")
	createGenre(ctx, t, db, "Drama", "drama")

	_, err := svc.Create(ctx, CreateTitleOptions{
		Name:         "Dune",
		Year:         2021,
		CategorySlug: strPtr("movies"),
		GenreSlugs:   []string{"sci-fi"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTitleOptions{
		Name:         "Dune Messiah",
		Year:         1969,
		CategorySlug: strPtr("books"),
		GenreSlugs:   []string{"sci-fi"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTitleOptions{
		Name:         "Casablanca",
		Year:         1942,
		CategorySlug: strPtr("movies"),
		GenreSlugs:   []string{"drama"},
	})
	require.NoError(t, err)

	// Year is an exact match.
	titles, total, err := svc.List(ctx, ListOptions{Year: intPtr(1969)})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, titles, 1)
	assert.Equal(t, "Dune Messiah", titles[0].Name)

	// Name is a case-sensitive substring match.
	titles, _, err = svc.List(ctx, ListOptions{Name: strPtr("Dune")})
	require.NoError(t, err)
	assert.Len(t, titles, 2)

	titles, _, err = svc.List(ctx, ListOptions{Name: strPtr("dune")})
	require.NoError(t, err)
	assert.Empty(t, titles)

	// Genre and category match against the linked slug.
	titles, _, err = svc.List(ctx, ListOptions{Genre: strPtr("sci")})
	require.NoError(t, err)
	assert.Len(t, titles, 2)

	titles, _, err = svc.List(ctx, ListOptions{Category: strPtr("movie")})
	require.NoError(t, err)
	assert.Len(t, titles, 2)

	// Filters combine with AND.
	titles, _, err = svc.List(ctx, ListOptions{Category: strPtr("movies"), Genre: strPtr("sci-fi")})
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "Dune", titles[0].Name)
}

func TestServiceRetrieve_Rating(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	title, err := svc.Create(ctx, CreateTitleOptions{Name: "Dune", Year: 2021})
	require.NoError(t, err)
	assert.Nil(t, title.Rating)

	now := time.Now()
	for i, score := range []int{6, 9} {
		user := &models.User{
			CreatedAt:    now,
			UpdatedAt:    now,
			Username:     []string{"alice", "bob"}[i],
			Email:        []string{"alice", "bob"}[i] + "@example.com",
			PasswordHash: "x",
			Role:         models.RoleUser,
		}
		_, err = db.NewInsert().Model(user).Exec(ctx)
		require.NoError(t, err)

		review := &models.Review{
			CreatedAt: now,
			UpdatedAt: now,
			TitleID:   title.ID,
			AuthorID:  user.ID,
			Text:      "text",
			Score:     score,
		}
		_, err = db.NewInsert().Model(review).Exec(ctx)
		require.NoError(t, err)
	}

	title, err = svc.Retrieve(ctx, title.ID)
	require.NoError(t, err)
	require.NotNil(t, title.Rating)
	assert.InDelta(t, 7.5, *title.Rating, 0.001)
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	createGenre(ctx, t, db, "Science Fiction", "sci-fi")
	createGenre(ctx, t, db, "Drama", "drama")

	title, err := svc.Create(ctx, CreateTitleOptions{
		Name:       "Dune",
		Year:       2020,
		GenreSlugs: []string{"sci-fi"},
	})
	require.NoError(t, err)

	// Partial update leaves unspecified fields alone.
	updated, err := svc.Update(ctx, title.ID, UpdateTitleOptions{Year: intPtr(2021)})
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Name)
	assert.Equal(t, 2021, updated.Year)
	require.Len(t, updated.Genres, 1)

	// A genre list replaces the existing set.
	updated, err = svc.Update(ctx, title.ID, UpdateTitleOptions{GenreSlugs: []string{"drama"}})
	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "drama", updated.Genres[0].Slug)

	_, err = svc.Update(ctx, 9999, UpdateTitleOptions{Year: intPtr(2021)})
	assert.ErrorIs(t, err, errcodes.NotFound("Title"))
}

func TestServiceDelete_CascadesReviewsAndComments(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	createGenre(ctx, t, db, "Science Fiction", "sci-fi")

	title, err := svc.Create(ctx, CreateTitleOptions{
		Name:       "Dune",
		Year:       2021,
		GenreSlugs: []string{"sci-fi"},
	})
	require.NoError(t, err)

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	_, err = db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	review := &models.Review{
		CreatedAt: now,
		UpdatedAt: now,
		TitleID:   title.ID,
		AuthorID:  user.ID,
		Text:      "text",
		Score:     8,
	}
	_, err = db.NewInsert().Model(review).Exec(ctx)
	require.NoError(t, err)

	comment := &models.Comment{
		CreatedAt: now,
		UpdatedAt: now,
		ReviewID:  review.ID,
		AuthorID:  user.ID,
		Text:      "text",
	}
	_, err = db.NewInsert().Model(comment).Exec(ctx)
	require.NoError(t, err)

	err = svc.Delete(ctx, title.ID)
	require.NoError(t, err)

	for _, model := range []interface{}{
		(*models.Review)(nil),
		(*models.Comment)(nil),
		(*models.GenreTitle)(nil),
		(*models.Title)(nil),
	} {
		count, err := db.NewSelect().Model(model).Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	}

	err = svc.Delete(ctx, title.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Title"))
}
