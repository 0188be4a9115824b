package entity

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Caption   string    `gorm:"not null" json:"caption"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}
