package dto

import "encoding/json"

// UpdateProfileRequest is the DTO for editing the user's profile.
type UpdateProfileRequest struct {
	Username    string          `json:"username"`
	Bio         string          `json:"bio"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}

// ProfileResponse is the user's profile as shown on the profile screen.
type ProfileResponse struct {
	UserID      uint            `json:"user_id"`
	Username    string          `json:"username"`
	Bio         string          `json:"bio"`
	AvatarURL   string          `json:"avatar_url,omitempty"`
	Email       string          `json:"email"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}
