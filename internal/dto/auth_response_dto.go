package dto

// LoginRequest represents the credentials submitted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// GoogleTokenSignInRequest represents an ID token submitted for Google sign-in.
type GoogleTokenSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
