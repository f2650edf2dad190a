package models

import (
	"time"
)

// Message types
const (
	MessagePlain      = "plain"
	MessageSharedPost = "shared_post"
)

// SharedPost is a denormalized snapshot of a feed post embedded in a
// message, so forwarded posts survive edits or deletion of the original.
type SharedPost struct {
	PostID       uint     `json:"post_id"`
	Author       string   `json:"author"`
	Content      string   `json:"content"`
	Images       []string `json:"images,omitempty"`
	LikeCount    int      `json:"like_count"`
	CommentCount int      `json:"comment_count"`
}

type Message struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	SenderID    uint        `gorm:"index" json:"sender_id"`
	Sender      User        `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID  uint        `gorm:"index" json:"receiver_id"`
	Receiver    User        `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Content     string      `gorm:"type:text" json:"content"`
	Images      []string    `gorm:"serializer:json" json:"images,omitempty"`
	MessageType string      `gorm:"size:20;default:'plain'" json:"message_type"`
	SharedPost  *SharedPost `gorm:"serializer:json" json:"shared_post,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Empty reports whether the message carries no content at all. Empty
// messages are rejected before they reach storage.
func (m *Message) Empty() bool {
	return m.Content == "" && len(m.Images) == 0 && m.SharedPost == nil
}

// PeerOf returns the conversation partner from this message's perspective
// of the given user.
func (m *Message) PeerOf(userID uint) uint {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
