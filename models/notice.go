package models

import (
	"time"
)

type Notice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"size:255" json:"author"`
	Category  string    `gorm:"size:50" json:"category"`
	FileURL   string    `gorm:"size:512" json:"file_url"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
