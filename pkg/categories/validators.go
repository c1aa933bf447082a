package categories

// CreateCategoryPayload represents the request body for creating a category.
type CreateCategoryPayload struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// ListCategoriesQuery represents the query parameters for listing categories.
type ListCategoriesQuery struct {
	Search string `query:"search"`
	Limit  int    `query:"limit" default:"50"`
	Offset int    `query:"offset" default:"0"`
}
