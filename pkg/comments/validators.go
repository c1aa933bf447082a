package comments

// CreateCommentPayload represents the request body for creating a comment.
type CreateCommentPayload struct {
	Text string `json:"text" validate:"required"`
}

// UpdateCommentPayload represents the request body for updating a comment.
type UpdateCommentPayload struct {
	Text *string `json:"text" validate:"omitempty"`
}

// ListCommentsQuery represents the query parameters for listing comments.
type ListCommentsQuery struct {
	Limit  int `query:"limit" default:"50"`
	Offset int `query:"offset" default:"0"`
}
