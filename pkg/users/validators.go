package users

// CreateUserPayload represents the request body for creating a user.
type CreateUserPayload struct {
	Username  string  `json:"username" validate:"required,min=3,max=50,slug"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	Role      string  `json:"role" validate:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

// ReplaceUserPayload represents the request body for fully updating a user.
// Omitted optional fields are cleared.
type ReplaceUserPayload struct {
	Username  string  `json:"username" validate:"required,min=3,max=50,slug"`
	Email     string  `json:"email" validate:"required,email"`
	Role      string  `json:"role" validate:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

// UpdateUserPayload represents the request body for updating a user.
type UpdateUserPayload struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50,slug"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

// UpdateMePayload represents the request body for the self-update route. Role
// is deliberately absent; users can't change their own role.
type UpdateMePayload struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50,slug"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

// ListUsersQuery represents the query parameters for listing users.
type ListUsersQuery struct {
	Limit  int `query:"limit" default:"50"`
	Offset int `query:"offset" default:"0"`
}
