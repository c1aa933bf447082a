package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Comment is a user's comment under a review. created_at is the publication
// date and is never updated.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cm"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
	ReviewID  int       `bun:",nullzero" json:"review_id"`
	AuthorID  int       `bun:",nullzero" json:"author_id"`
	Author    *User     `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Text      string    `json:"text"`
}
