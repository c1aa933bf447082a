package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Title struct {
	bun.BaseModel `bun:"table:titles,alias:t"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `bun:",nullzero" json:"name"`
	Year        int       `bun:",nullzero" json:"year"`
	Description string    `json:"description"`
	CategoryID  *int      `json:"-"`
	Category    *Category `bun:"rel:belongs-to,join:category_id=id" json:"category"`
	Genres      []*Genre  `bun:"m2m:genre_titles,join:Title=Genre" json:"genre"`
	// Rating is the average review score, null until the title is reviewed.
	Rating *float64 `bun:",scanonly" json:"rating"`
}
