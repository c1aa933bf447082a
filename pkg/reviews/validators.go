package reviews

// CreateReviewPayload represents the request body for creating a review.
// The author and title are taken from the request context and URL.
type CreateReviewPayload struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

// UpdateReviewPayload represents the request body for updating a review.
type UpdateReviewPayload struct {
	Text  *string `json:"text" validate:"omitempty"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

// ListReviewsQuery represents the query parameters for listing reviews.
type ListReviewsQuery struct {
	Limit  int `query:"limit" default:"50"`
	Offset int `query:"offset" default:"0"`
}
