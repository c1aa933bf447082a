package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/models"
	"github.com/critiqhq/critiq/pkg/titles"
)

// pubDateLayout is the fractional-seconds UTC format used by the seed files.
const pubDateLayout = "2006-01-02T15:04:05.999999Z"

// Status classifies the outcome of loading one entity file.
type Status string

// Entity load outcomes.
const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// EntityResult reports the outcome of loading one entity file.
type EntityResult struct {
	Entity string
	Status Status
	Rows   int
	Err    error
}

// Importer seeds the database from a directory of per-entity CSV files.
// It wipes each entity before reloading it and is not safe to run against
// a live store.
type Importer struct {
	db *bun.DB
}

// New creates a new importer.
func New(db *bun.DB) *Importer {
	return &Importer{db: db}
}

type loader struct {
	entity string
	load   func(ctx context.Context, dataDir string) (int, error)
}

// Run loads every entity file in dependency order so that foreign keys
// referenced by later files already exist. A missing file is reported as a
// warning, any other failure as an error; either way the run continues with
// the next entity.
func (i *Importer) Run(ctx context.Context, dataDir string) []EntityResult {
	loaders := []loader{
		{"users", i.loadUsers},
		{"category", i.loadCategories},
		{"genre", i.loadGenres},
		{"titles", i.loadTitles},
		{"genre_title", i.loadGenreTitles},
		{"review", i.loadReviews},
		{"comments", i.loadComments},
	}

	results := make([]EntityResult, 0, len(loaders))
	for _, l := range loaders {
		rows, err := l.load(ctx, dataDir)
		result := EntityResult{Entity: l.entity, Status: StatusSuccess, Rows: rows}
		if err != nil {
			result.Status = StatusError
			result.Err = err
			if errors.Is(err, os.ErrNotExist) {
				result.Status = StatusWarning
			}
		}
		results = append(results, result)
	}
	return results
}

// readRows reads a CSV file and returns one header-keyed map per row.
func readRows(dataDir, entity string) ([]map[string]string, error) {
	f, err := os.Open(filepath.Join(dataDir, entity+".csv"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s header", entity)
	}

	rows := []map[string]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s row %d", entity, len(rows)+2)
		}

		row := map[string]string{}
		for idx, key := range header {
			if idx < len(record) {
				row[key] = record[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func intField(row map[string]string, key string) (int, error) {
	value, err := strconv.Atoi(row[key])
	if err != nil {
		return 0, errors.Errorf("invalid %s value %q", key, row[key])
	}
	return value, nil
}

func optionalString(row map[string]string, key string) *string {
	if value, ok := row[key]; ok && value != "" {
		return &value
	}
	return nil
}

// pubDate parses the row's pub_date, falling back to now when absent.
func pubDate(row map[string]string) (time.Time, error) {
	value, ok := row["pub_date"]
	if !ok || value == "" {
		return time.Now(), nil
	}
	ts, err := time.Parse(pubDateLayout, value)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid pub_date value %q", value)
	}
	return ts, nil
}

func wipe(ctx context.Context, tx bun.Tx, model interface{}) error {
	_, err := tx.NewDelete().Model(model).Where("1 = 1").Exec(ctx)
	return errors.WithStack(err)
}

func (i *Importer) loadUsers(ctx context.Context, dataDir string) (int, error) {
	rows, err := readRows(dataDir, "users")
	if err != nil {
		return 0, err
	}

	return len(rows), i.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := wipe(ctx, tx, (*models.User)(nil)); err != nil {
			return err
		}

		for _, row := range rows {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}

			role := models.Role(row["role"])
			if role == "" {
				role = models.RoleUser
			}
			if !role.Valid() {
				return errors.Errorf("invalid role value %q", row["role"])
			}

			now := time.Now()
			user := &models.User{
				ID:        id,
				CreatedAt: now,
				UpdatedAt: now,
				Username:  row["username"],
				Email:     row["email"],
				Role:      role,
				Bio:       optionalString(row, "bio"),
				FirstName: optionalString(row, "first_name"),
				LastName:  optionalString(row, "last_name"),
			}

			if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

func (i *Importer) loadCategories(ctx context.Context, dataDir string) (int, error) {
	rows, err := readRows(dataDir, "category")
	if err != nil {
		return 0, err
	}

	return len(rows), i.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := wipe(ctx, tx, (*models.Category)(nil)); err != nil {
			return err
		}

		for _, row := range rows {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}

			now := time.Now()
			category := &models.Category{
				ID:        id,
				CreatedAt: now,
				UpdatedAt: now,
				Name:      row["name"],
				Slug:      row["slug"],
			}

			if _, err := tx.NewInsert().Model(category).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

func (i *Importer) loadGenres(ctx context.Context, dataDir string) (int, error) {
	rows, err := readRows(dataDir, "genre")
	if err != nil {
		return 0, err
	}

	return len(rows), i.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := wipe(ctx, tx, (*models.Genre)(nil)); err != nil {
			return err
		}

		for _, row := range rows {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}

			now := time.Now()
			genre := &models.Genre{
				ID:        id,
				CreatedAt: now,
				UpdatedAt: now,
				Name:      row["name"],
				Slug:      row["slug"],
			}

			if _, err := tx.NewInsert().Model(genre).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

func (i *Importer) loadTitles(ctx context.Context, dataDir string) (int, error) {
	rows, err := readRows(dataDir, "titles")
	if err != nil {
		return 0, err
	}

	return len(rows), i.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := wipe(ctx, tx, (*models.Title)(nil)); err != nil {
			return err
		}

		for _, row := range rows {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			year, err := intField(row, "year")
			if err != nil {
				return err
			}

			var categoryID *int
			if row["category"] != "" {
				cid, err := intField(row, "category")
				if err != nil {
					return err
				}
				exists, err := tx.NewSelect().
					Model((*models.Category)(nil)).
					Where("id = ?", cid).
					Exists(ctx)
				if err != nil {
					return errors.WithStack(err)
				}
				if !exists {
					return errors.Errorf("category %d not found", cid)
				}
				categoryID = &cid
			}

			description := row["description"]
			if description == "" {
				description = titles.DefaultDescription
			}

			now := time.Now()
			title := &models.Title{
				ID:          id,
				CreatedAt:   now,
				UpdatedAt:   now,
				Name:        row["name"],
				Year:        year,
				Description: description,
				CategoryID:  categoryID,
			}

			if _, err := tx.NewInsert().Model(title).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

// loadGenreTitles groups rows by title and attaches each title's full genre
// list in one batch insert instead of one insert per link.
func (i *Importer) loadGenreTitles(ctx context.Context, dataDir string) (int, error) {
	rows, err := readRows(dataDir, "genre_title")
	if err != nil {
		return 0, err
	}

	byTitle := map[int][]int{}
	for _, row := range rows {
		titleID, err := intField(row, "title_id")
		if err != nil {
			return 0, err
		}
		genreID, err := intField(row, "genre_id")
		if err != nil {
			return 0, err
		}
		byTitle[titleID] = append(byTitle[titleID], genreID)
	}

	titleIDs := make([]int, 0, len(byTitle))
	for titleID := range byTitle {
		titleIDs = append(titleIDs, titleID)
	}
	sort.Ints(titleIDs)

	return len(rows), i.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := wipe(ctx, tx, (*models.GenreTitle)(nil)); err != nil {
			return err
		}

		for _, titleID := range titleIDs {
			exists, err := tx.NewSelect().
				Model((*models.Title)(nil)).
				Where("id = ?", titleID).
				Exists(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			if !exists {
				return errors.Errorf("title %d not found", titleID)
			}

			links := make([]*models.GenreTitle, 0, len(byTitle[titleID]))
			for _, genreID := range byTitle[titleID] {
				links = append(links, &models.GenreTitle{
					GenreID: genreID,
					TitleID: titleID,
				})
			}

			if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

func (i *Importer) loadReviews(ctx context.Context, dataDir string) (int, error) {
	rows, err := readRows(dataDir, "review")
	if err != nil {
		return 0, err
	}

	return len(rows), i.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := wipe(ctx, tx, (*models.Review)(nil)); err != nil {
			return err
		}

		for _, row := range rows {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			titleID, err := intField(row, "title_id")
			if err != nil {
				return err
			}
			authorID, err := i.resolveAuthor(ctx, tx, row)
			if err != nil {
				return err
			}
			score, err := intField(row, "score")
			if err != nil {
				return err
			}
			createdAt, err := pubDate(row)
			if err != nil {
				return err
			}

			review := &models.Review{
				ID:        id,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
				TitleID:   titleID,
				AuthorID:  authorID,
				Text:      row["text"],
				Score:     score,
			}

			if _, err := tx.NewInsert().Model(review).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

func (i *Importer) loadComments(ctx context.Context, dataDir string) (int, error) {
	rows, err := readRows(dataDir, "comments")
	if err != nil {
		return 0, err
	}

	return len(rows), i.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := wipe(ctx, tx, (*models.Comment)(nil)); err != nil {
			return err
		}

		for _, row := range rows {
			id, err := intField(row, "id")
			if err != nil {
				return err
			}
			reviewID, err := intField(row, "review_id")
			if err != nil {
				return err
			}
			authorID, err := i.resolveAuthor(ctx, tx, row)
			if err != nil {
				return err
			}
			createdAt, err := pubDate(row)
			if err != nil {
				return err
			}

			comment := &models.Comment{
				ID:        id,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
				ReviewID:  reviewID,
				AuthorID:  authorID,
				Text:      row["text"],
			}

			if _, err := tx.NewInsert().Model(comment).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

// resolveAuthor looks up the author column as a user id and verifies the row
// exists.
func (i *Importer) resolveAuthor(ctx context.Context, tx bun.Tx, row map[string]string) (int, error) {
	authorID, err := intField(row, "author")
	if err != nil {
		return 0, err
	}

	exists, err := tx.NewSelect().
		Model((*models.User)(nil)).
		Where("id = ?", authorID).
		Exists(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if !exists {
		return 0, errors.Errorf("user %d not found", authorID)
	}
	return authorID, nil
}
