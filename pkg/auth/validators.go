package auth

// SignupPayload represents the registration request body.
type SignupPayload struct {
	Username  string  `json:"username" validate:"required,min=3,max=50,slug"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

// TokenPayload represents the token issuance request body. Email is the
// login key.
type TokenPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents the token issuance response.
type TokenResponse struct {
	Token string `json:"token"`
}
