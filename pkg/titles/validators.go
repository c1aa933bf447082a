package titles

// CreateTitlePayload represents the request body for creating a title.
// Category and genres are supplied as slugs and expanded to nested objects
// in the response.
type CreateTitlePayload struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required,year"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
}

// UpdateTitlePayload represents the request body for partially updating a
// title. A genre list, when present, replaces the existing set.
type UpdateTitlePayload struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int     `json:"year" validate:"omitempty,year"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
}

// ListTitlesQuery represents the query parameters for listing titles.
type ListTitlesQuery struct {
	Genre    *string `query:"genre"`
	Category *string `query:"category"`
	Name     *string `query:"name"`
	Year     *int    `query:"year"`
	Limit    int     `query:"limit" default:"50"`
	Offset   int     `query:"offset" default:"0"`
}
