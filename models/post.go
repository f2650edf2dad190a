package models

import (
	"time"
)

type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AuthorID     uint      `gorm:"index" json:"author_id"`
	Author       User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content      string    `gorm:"type:text" json:"content"`
	Images       []string  `gorm:"serializer:json" json:"images,omitempty"`
	LikeCount    int       `gorm:"default:0" json:"like_count"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PostLike struct {
	PostID    uint      `gorm:"primaryKey" json:"post_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index" json:"post_id"`
	AuthorID  uint      `json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot freezes the post into the denormalized form embedded in shared
// messages.
func (p *Post) Snapshot() *SharedPost {
	return &SharedPost{
		PostID:       p.ID,
		Author:       p.Author.Name,
		Content:      p.Content,
		Images:       p.Images,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
	}
}
