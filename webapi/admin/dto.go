package admin

// CreateUserInput represents the request body for creating an identity as an admin.
type CreateUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserInput represents the request body for updating another identity.
type UpdateUserInput struct {
	Email   string `json:"email" validate:"required,email,max=50"`
	IsAdmin bool   `json:"is_admin"`
}

// ResetPasswordInput represents the request body for a password reset.
type ResetPasswordInput struct {
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}
