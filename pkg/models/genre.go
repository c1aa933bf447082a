package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
	Slug      string    `bun:",nullzero" json:"slug"`
}

// GenreTitle is the join row linking a genre to a title. It is registered
// with bun so the Title.Genres m2m relation can resolve through it.
type GenreTitle struct {
	bun.BaseModel `bun:"table:genre_titles,alias:gt"`

	ID      int    `bun:",pk,nullzero" json:"id"`
	GenreID int    `bun:",nullzero" json:"genre_id"`
	Genre   *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	TitleID int    `bun:",nullzero" json:"title_id"`
	Title   *Title `bun:"rel:belongs-to,join:title_id=id" json:"title,omitempty"`
}
