package dto

// RegisterRequest is the JSON body for POST /auth/register.
// The username tag is a custom binding rule: 3-20 chars of [A-Za-z0-9_].
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Username  string  `json:"username" binding:"required,username"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=50"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the JSON body for POST /auth/refresh-token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthUser is the compact user shape returned next to a token.
type AuthUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}
