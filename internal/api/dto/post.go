package dto

import "time"

// PostResponse is one feed entry.
type PostResponse struct {
	ID        uint      `json:"id"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  uint      `json:"author_id"`
}
