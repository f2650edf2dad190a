package models

import (
	"time"
)

// Row status for a connection pair.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
)

// Viewer-perspective status values returned by the API.
const (
	StatusNotConnected    = "not_connected"
	StatusPending         = "pending"
	StatusRequestReceived = "request_received"
	StatusConnected       = "connected"
)

// Connection is stored once per user pair. Both viewers derive their own
// status from the same row, so the two sides can never disagree.
type Connection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"index:idx_conn_pair,unique" json:"requester_id"`
	Requester   User      `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	AddresseeID uint      `gorm:"index:idx_conn_pair,unique" json:"addressee_id"`
	Addressee   User      `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
	Status      string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatusFor derives the status the given viewer sees for this pair.
func (c *Connection) StatusFor(viewerID uint) string {
	switch c.Status {
	case ConnectionAccepted:
		return StatusConnected
	case ConnectionPending:
		if c.RequesterID == viewerID {
			return StatusPending
		}
		return StatusRequestReceived
	}
	return StatusNotConnected
}

// PeerOf returns the other endpoint of the pair.
func (c *Connection) PeerOf(userID uint) uint {
	if c.RequesterID == userID {
		return c.AddresseeID
	}
	return c.RequesterID
}
