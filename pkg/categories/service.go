package categories

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/models"
)

// Service handles category operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new categories service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// CreateCategoryOptions contains options for creating a category.
type CreateCategoryOptions struct {
	Name string
	Slug string
}

// Create creates a new category.
func (s *Service) Create(ctx context.Context, opts CreateCategoryOptions) (*models.Category, error) {
	exists, err := s.db.NewSelect().
		Model((*models.Category)(nil)).
		Where("slug = ?", opts.Slug).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.ValidationError("Slug already exists")
	}

	now := time.Now()
	category := &models.Category{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      opts.Name,
		Slug:      opts.Slug,
	}

	_, err = s.db.NewInsert().Model(category).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return category, nil
}

// RetrieveBySlug gets a category by slug.
func (s *Service) RetrieveBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category := &models.Category{}
	err := s.db.NewSelect().
		Model(category).
		Where("c.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Category")
	}
	return category, nil
}

// ListOptions contains options for listing categories.
type ListOptions struct {
	Search string
	Limit  int
	Offset int
}

// List returns a paginated list of categories, optionally filtered by a
// case-insensitive name substring.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*models.Category, int, error) {
	categories := []*models.Category{}

	query := s.db.NewSelect().
		Model(&categories).
		Order("c.id ASC")

	if opts.Search != "" {
		query = query.Where("c.name LIKE ?", "%"+opts.Search+"%")
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

	return categories, total, nil
}

// Delete removes a category by slug. Titles in the category are kept and
// detached from it.
func (s *Service) Delete(ctx context.Context, slug string) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		category := &models.Category{}
		err := tx.NewSelect().
			Model(category).
			Where("c.slug = ?", slug).
			Scan(ctx)
		if err != nil {
			return errcodes.NotFound("Category")
		}

		_, err = tx.NewUpdate().
			Model((*models.Title)(nil)).
			Set("category_id = NULL").
			Where("category_id = ?", category.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model(category).
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
}
