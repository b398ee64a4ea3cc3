package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Waypost application. Signup and login are
// handled by an external identity service; this record exists so posts, likes
// and comments have an owner.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `json:"bio,omitempty"`
	City     string `json:"city,omitempty"`

	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lng,omitempty"`

	TotalPosts int `gorm:"default:0" json:"total_posts"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
