package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Profile is the public identity a user shows on the feed. Preferences holds
// free-form client settings (theme, chart options) as raw JSON.
type Profile struct {
	UserID      uint           `gorm:"primaryKey" json:"user_id"`
	Username    string         `gorm:"not null" json:"username"`
	Bio         string         `json:"bio"`
	AvatarURL   string         `json:"avatar_url"`
	Email       string         `gorm:"not null" json:"email"`
	Preferences datatypes.JSON `gorm:"type:jsonb" json:"preferences"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
