package dto

// SignUpRequest is the DTO for registering a new account.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the DTO for an email/password login.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries the opaque refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SignOutRequest carries the refresh token to revoke.
type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned on sign-in and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until the access token expires
}

// SessionResponse describes the authenticated user.
type SessionResponse struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}
