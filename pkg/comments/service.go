package comments

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/critiqhq/critiq/pkg/errcodes"
	"github.com/critiqhq/critiq/pkg/models"
)

// Service handles comment operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new comments service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// reviewExists verifies the review exists under the given title.
func (s *Service) reviewExists(ctx context.Context, titleID, reviewID int) error {
	exists, err := s.db.NewSelect().
		Model((*models.Review)(nil)).
		Where("id = ?", reviewID).
		Where("title_id = ?", titleID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Review")
	}
	return nil
}

// CreateCommentOptions contains options for creating a comment.
type CreateCommentOptions struct {
	TitleID  int
	ReviewID int
	AuthorID int
	Text     string
}

// Create creates a new comment under a review.
func (s *Service) Create(ctx context.Context, opts CreateCommentOptions) (*models.Comment, error) {
	if err := s.reviewExists(ctx, opts.TitleID, opts.ReviewID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &models.Comment{
		CreatedAt: now,
		UpdatedAt: now,
		ReviewID:  opts.ReviewID,
		AuthorID:  opts.AuthorID,
		Text:      opts.Text,
	}

	_, err := s.db.NewInsert().Model(comment).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return s.Retrieve(ctx, opts.ReviewID, comment.ID)
}

// Retrieve gets a comment by ID, scoped to its review.
func (s *Service) Retrieve(ctx context.Context, reviewID, commentID int) (*models.Comment, error) {
	comment := &models.Comment{}
	err := s.db.NewSelect().
		Model(comment).
		Relation("Author").
		Where("cm.id = ?", commentID).
		Where("cm.review_id = ?", reviewID).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Comment")
	}
	return comment, nil
}

// ListOptions contains options for listing comments.
type ListOptions struct {
	Limit  int
	Offset int
}

// List returns a paginated list of a review's comments.
func (s *Service) List(ctx context.Context, titleID, reviewID int, opts ListOptions) ([]*models.Comment, int, error) {
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments := []*models.Comment{}

	query := s.db.NewSelect().
		Model(&comments).
		Relation("Author").
		Where("cm.review_id = ?", reviewID).
		Order("cm.id ASC")

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

	return comments, total, nil
}

// UpdateOptions contains options for updating a comment.
type UpdateOptions struct {
	Columns []string
}

// Update updates a comment. pub_date is never touched.
func (s *Service) Update(ctx context.Context, comment *models.Comment, opts UpdateOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	comment.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	_, err := s.db.NewUpdate().
		Model(comment).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// Delete removes a comment.
func (s *Service) Delete(ctx context.Context, commentID int) error {
	_, err := s.db.NewDelete().
		Model((*models.Comment)(nil)).
		Where("id = ?", commentID).
		Exec(ctx)
	return errors.WithStack(err)
}
