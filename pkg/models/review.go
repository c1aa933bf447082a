package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Review is a user's review of a title. A user may review a given title at
// most once; created_at is the publication date and is never updated.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:rv"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
	TitleID   int       `bun:",nullzero" json:"title_id"`
	AuthorID  int       `bun:",nullzero" json:"author_id"`
	Author    *User     `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Text      string    `json:"text"`
	Score     int       `bun:",nullzero" json:"score"`
}
