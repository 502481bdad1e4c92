// Package dto contains Data Transfer Objects for API request and response structures
package dto

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100" example:"jsmith"`
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	AccessToken string  `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string  `json:"token_type" example:"Bearer"`
	ExpiresIn   int     `json:"expires_in" example:"3600"`
	User        UserDTO `json:"user"`
}

// LogoutRequest revokes the presented access token
type LogoutRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}
