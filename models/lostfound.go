package models

import (
	"time"
)

// Lost-and-found categories
const (
	ItemLost  = "lost"
	ItemFound = "found"
)

type LostFoundItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:10;not null" json:"category"`
	Location    string    `gorm:"size:255" json:"location"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	Resolved    bool      `gorm:"default:false" json:"resolved"`
	CreatedBy   uint      `json:"created_by"`
	Creator     User      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
