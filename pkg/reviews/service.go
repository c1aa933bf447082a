package reviews

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/models"
)

// Service handles review operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new reviews service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

func (s *Service) titleExists(ctx context.Context, titleID int) error {
	exists, err := s.db.NewSelect().
		Model((*models.Title)(nil)).
		Where("id = ?", titleID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Title")
	}
	return nil
}

// CreateReviewOptions contains options for creating a review.
type CreateReviewOptions struct {
	TitleID  int
	AuthorID int
	Text     string
	Score    int
}

// Create creates a new review. A user may review a given title once.
func (s *Service) Create(ctx context.Context, opts CreateReviewOptions) (*models.Review, error) {
	if err := s.titleExists(ctx, opts.TitleID); err != nil {
		return nil, err
	}

	exists, err := s.db.NewSelect().
		Model((*models.Review)(nil)).
		Where("title_id = ?", opts.TitleID).
		Where("author_id = ?", opts.AuthorID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.Conflict("You have already reviewed this title")
	}

	now := time.Now()
	review := &models.Review{
		CreatedAt: now,
		UpdatedAt: now,
		TitleID:   opts.TitleID,
		AuthorID:  opts.AuthorID,
		Text:      opts.Text,
		Score:     opts.Score,
	}

	_, err = s.db.NewInsert().Model(review).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return s.Retrieve(ctx, opts.TitleID, review.ID)
}

// Retrieve gets a review by ID, scoped to its title.
func (s *Service) Retrieve(ctx context.Context, titleID, reviewID int) (*models.Review, error) {
	review := &models.Review{}
	err := s.db.NewSelect().
		Model(review).
		Relation("Author").
		Where("rv.id = ?", reviewID).
		Where("rv.title_id = ?", titleID).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Review")
	}
	return review, nil
}

// ListOptions contains options for listing reviews.
type ListOptions struct {
	Limit  int
	Offset int
}

// List returns a paginated list of a title's reviews.
func (s *Service) List(ctx context.Context, titleID int, opts ListOptions) ([]*models.Review, int, error) {
	if err := s.titleExists(ctx, titleID); err != nil {
		return nil, 0, err
	}

	reviews := []*models.Review{}

	query := s.db.NewSelect().
		Model(&reviews).
		Relation("Author").
		Where("rv.title_id = ?", titleID).
		Order("rv.id ASC")

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

	return reviews, total, nil
}

// UpdateOptions contains options for updating a review.
type UpdateOptions struct {
	Columns []string
}

// Update updates a review. pub_date is never touched.
func (s *Service) Update(ctx context.Context, review *models.Review, opts UpdateOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	review.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := s.db.NewUpdate().
		Model(review).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// Delete removes a review and its comments.
func (s *Service) Delete(ctx context.Context, reviewID int) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.Comment)(nil)).
			Where("review_id = ?", reviewID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Review)(nil)).
			Where("id = ?", reviewID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}
