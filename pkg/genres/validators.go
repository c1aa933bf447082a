package genres

// CreateGenrePayload represents the request body for creating a genre.
type CreateGenrePayload struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// ListGenresQuery represents the query parameters for listing genres.
type ListGenresQuery struct {
	Search string `query:"search"`
	Limit  int    `query:"limit" default:"50"`
	Offset int    `query:"offset" default:"0"`
}
