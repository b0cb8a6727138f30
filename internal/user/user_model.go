package user

import (
	"time"

	"gorm.io/gorm"
)

// User is the identity-linked profile record every membership points at.
type User struct {
	gorm.Model
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `json:"-"`
	FullName   string    `json:"full_name"`
	AvatarURL  string    `json:"avatar_url"`
	LastActive time.Time `json:"last_active"`
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}
