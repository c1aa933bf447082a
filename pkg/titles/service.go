package titles

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/models"
)

// DefaultDescription is used when a title is created without a description.
const DefaultDescription = "No description"

// ratingExpr computes the average review score for a title. NULL when the
// title has no reviews yet.
const ratingExpr = "(SELECT AVG(rv.score) FROM reviews AS rv WHERE rv.title_id = t.id) AS rating"

// Service handles title operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new titles service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// CreateTitleOptions contains options for creating a title. Category and
// genres are referenced by slug.
type CreateTitleOptions struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// Create creates a new title, resolving category and genre slugs to rows.
func (s *Service) Create(ctx context.Context, opts CreateTitleOptions) (*models.Title, error) {
	description := DefaultDescription
	if opts.Description != nil && *opts.Description != "" {
		description = *opts.Description
	}

	title := &models.Title{}

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		categoryID, err := resolveCategorySlug(ctx, tx, opts.CategorySlug)
		if err != nil {
			return err
		}

		genreIDs, err := resolveGenreSlugs(ctx, tx, opts.GenreSlugs)
		if err != nil {
			return err
		}

		now := time.Now()
		title.CreatedAt = now
		title.UpdatedAt = now
		title.Name = opts.Name
		title.Year = opts.Year
		title.Description = description
		title.CategoryID = categoryID

		_, err = tx.NewInsert().Model(title).Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return replaceGenreLinks(ctx, tx, title.ID, genreIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.Retrieve(ctx, title.ID)
}

// Retrieve gets a title by ID with its category, genres, and rating.
func (s *Service) Retrieve(ctx context.Context, id int) (*models.Title, error) {
	title := &models.Title{}
	err := s.db.NewSelect().
		Model(title).
		Column("t.*").
		ColumnExpr(ratingExpr).
		Relation("Category").
		Relation("Genres").
		Where("t.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Title")
	}
	return title, nil
}

// ListOptions contains options for listing titles. All filters are optional
// and combine with AND.
type ListOptions struct {
	Genre    *string
	Category *string
	Name     *string
	Year     *int
	Limit    int
	Offset   int
}

// List returns a paginated list of titles. String filters are case-sensitive
// substring matches, which is why they use instr instead of LIKE.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*models.Title, int, error) {
	titles := []*models.Title{}

	query := s.db.NewSelect().
		Model(&titles).
		Column("t.*").
		ColumnExpr(ratingExpr).
		Relation("Category").
		Relation("Genres").
		Order("t.id ASC")

	if opts.Genre != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM genre_titles AS gt JOIN genres AS g ON g.id = gt.genre_id WHERE gt.title_id = t.id AND instr(g.slug, ?) > 0)",
			*opts.Genre,
		)
	}
	if opts.Category != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM categories AS c WHERE c.id = t.category_id AND instr(c.slug, ?) > 0)",
			*opts.Category,
		)
	}
	if opts.Name != nil {
		query = query.Where("instr(t.name, ?) > 0", *opts.Name)
	}
	if opts.Year != nil {
		query = query.Where("t.year = ?", *opts.Year)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return titles, total, nil
}

// UpdateTitleOptions contains options for updating a title. Nil fields are
// left unchanged; Columns tracks which scalar columns to write.
type UpdateTitleOptions struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
	ClearGenres  bool
}

// Update updates a title. Genre links are replaced wholesale when GenreSlugs
// is provided (or ClearGenres is set).
func (s *Service) Update(ctx context.Context, id int, opts UpdateTitleOptions) (*models.Title, error) {
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		title := &models.Title{}
		err := tx.NewSelect().
			Model(title).
			Where("t.id = ?", id).
			Scan(ctx)
		if err != nil {
			return errcodes.NotFound("Title")
		}

		columns := []string{}
		if opts.Name != nil {
			title.Name = *opts.Name
			columns = append(columns, "name")
		}
		if opts.Year != nil {
			title.Year = *opts.Year
			columns = append(columns, "year")
		}
		if opts.Description != nil {
			title.Description = *opts.Description
			columns = append(columns, "description")
		}
		if opts.CategorySlug != nil {
			categoryID, err := resolveCategorySlug(ctx, tx, opts.CategorySlug)
			if err != nil {
				return err
			}
			title.CategoryID = categoryID
			columns = append(columns, "category_id")
		}

		if len(columns) > 0 {
			title.UpdatedAt = time.Now()
			columns = append(columns, "updated_at")

			_, err = tx.NewUpdate().
				Model(title).
				Column(columns...).
				WherePK().
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		if opts.GenreSlugs != nil || opts.ClearGenres {
			genreIDs, err := resolveGenreSlugs(ctx, tx, opts.GenreSlugs)
			if err != nil {
				return err
			}
			return replaceGenreLinks(ctx, tx, title.ID, genreIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Retrieve(ctx, id)
}

// Delete removes a title along with its reviews, the comments under those
// reviews, and its genre links.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.Comment)(nil)).
			Where("review_id IN (SELECT id FROM reviews WHERE title_id = ?)", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Review)(nil)).
			Where("title_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.GenreTitle)(nil)).
			Where("title_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		res, err := tx.NewDelete().
			Model((*models.Title)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return errcodes.NotFound("Title")
		}
		return nil
	})
}

func resolveCategorySlug(ctx context.Context, tx bun.Tx, slug *string) (*int, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}

	category := &models.Category{}
	err := tx.NewSelect().
		Model(category).
		Where("c.slug = ?", *slug).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.ValidationError("Unknown category slug")
	}
	return &category.ID, nil
}

func resolveGenreSlugs(ctx context.Context, tx bun.Tx, slugs []string) ([]int, error) {
	ids := make([]int, 0, len(slugs))
	for _, slug := range slugs {
		genre := &models.Genre{}
		err := tx.NewSelect().
			Model(genre).
			Where("g.slug = ?", slug).
			Scan(ctx)
		if err != nil {
			return nil, errcodes.ValidationError("Unknown genre slug")
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

func replaceGenreLinks(ctx context.Context, tx bun.Tx, titleID int, genreIDs []int) error {
	_, err := tx.NewDelete().
		Model((*models.GenreTitle)(nil)).
		Where("title_id = ?", titleID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(genreIDs) == 0 {
		return nil
	}

	links := make([]*models.GenreTitle, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		links = append(links, &models.GenreTitle{
			GenreID: genreID,
			TitleID: titleID,
		})
	}

	_, err = tx.NewInsert().Model(&links).Exec(ctx)
	return errors.WithStack(err)
}
