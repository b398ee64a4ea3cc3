// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a location-tagged post in the Waypost application.
//
// Latitude and Longitude are pointers because a post may be created without a
// pin; a post missing either coordinate is never spatially discoverable and is
// skipped by the recommendation candidate fetch.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	ImageURL string `json:"image_url,omitempty"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lng,omitempty"`

	// Categories and Moods are free-text tag lists. Duplicates may appear in
	// stored data; preference matching treats them as sets.
	Categories StringList `gorm:"type:text" json:"categories"`
	Moods      StringList `gorm:"type:text" json:"moods"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	// Denormalized counters maintained by the interaction service, not by
	// triggers. The recommendation engine only reads them.
	LikesCount    int `gorm:"default:0" json:"likes_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasCoordinates reports whether the post carries a complete coordinate pair.
func (p *Post) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
