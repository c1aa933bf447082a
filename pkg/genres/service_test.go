package genres

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

func TestServiceCreateAndRetrieve(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateGenreOptions{Name: "Science Fiction", Slug: "sci-fi"})
	require.NoError(t, err)

	genre, err := svc.RetrieveBySlug(ctx, "sci-fi")
	require.NoError(t, err)
	assert.Equal(t, created.ID, genre.ID)

	_, err = svc.Create(ctx, CreateGenreOptions{Name: "More Sci-Fi", Slug: "sci-fi"})
	assert.ErrorIs(t, err, errcodes.ValidationError("Slug already exists"))

	_, err = svc.RetrieveBySlug(ctx, "western")
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestServiceList_Search(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateGenreOptions{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateGenreOptions{Name: "Comedy", Slug: "comedy"})
	require.NoError(t, err)

	genres, total, err := svc.List(ctx, ListOptions{Search: "dra"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, genres, 1)
	assert.Equal(t, "drama", genres[0].Slug)
}

func TestServiceDelete_KeepsLinkedTitles(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre, err := svc.Create(ctx, CreateGenreOptions{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)

	now := time.Now()
	title := &models.Title{
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        "Dune",
		Year:        2021,
		Description: "No description",
	}
	_, err = db.NewInsert().Model(title).Exec(ctx)
	require.NoError(t, err)

	link := &models.GenreTitle{GenreID: genre.ID, TitleID: title.ID}
	_, err = db.NewInsert().Model(link).Exec(ctx)
	require.NoError(t, err)

	err = svc.Delete(ctx, "drama")
	require.NoError(t, err)

	linkCount, err := db.NewSelect().Model((*models.GenreTitle)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, linkCount)

	titleCount, err := db.NewSelect().Model((*models.Title)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, titleCount)
}
