package models

import "time"

// Like is the (user, post) relation recorded when a user likes a post.
// The composite unique index makes duplicate likes impossible at the store
// level; the repository additionally inserts with ON CONFLICT DO NOTHING so a
// double-tap race is a no-op rather than an error.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
