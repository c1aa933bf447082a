package genres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/models"
)

// Service handles genre operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new genres service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// CreateGenreOptions contains options for creating a genre.
type CreateGenreOptions struct {
	Name string
	Slug string
}

// Create creates a new genre.
func (s *Service) Create(ctx context.Context, opts CreateGenreOptions) (*models.Genre, error) {
	exists, err := s.db.NewSelect().
		Model((*models.Genre)(nil)).
		Where("slug = ?", opts.Slug).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.ValidationError("Slug already exists")
	}

	now := time.Now()
	genre := &models.Genre{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      opts.Name,
		Slug:      opts.Slug,
	}

	_, err = s.db.NewInsert().Model(genre).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return genre, nil
}

// RetrieveBySlug gets a genre by slug.
func (s *Service) RetrieveBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	genre := &models.Genre{}
	err := s.db.NewSelect().
		Model(genre).
		Where("g.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Genre")
	}
	return genre, nil
}

// ListOptions contains options for listing genres.
type ListOptions struct {
	Search string
	Limit  int
	Offset int
}

// List returns a paginated list of genres, optionally filtered by a
// case-insensitive name substring.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*models.Genre, int, error) {
	genres := []*models.Genre{}

	query := s.db.NewSelect().
		Model(&genres).
		Order("g.id ASC")

	if opts.Search != "" {
		query = query.Where("g.name LIKE ?", "%"+opts.Search+"%")
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

	return genres, total, nil
}

// Delete removes a genre by slug. Titles keep their other genres; only the
// links to the deleted genre are removed.
func (s *Service) Delete(ctx context.Context, slug string) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		genre := &models.Genre{}
		err := tx.NewSelect().
			Model(genre).
			Where("g.slug = ?", slug).
			Scan(ctx)
		if err != nil {
			return errcodes.NotFound("Genre")
		}

		_, err = tx.NewDelete().
			Model((*models.GenreTitle)(nil)).
			Where("genre_id = ?", genre.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model(genre).
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
}
