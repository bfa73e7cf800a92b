package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Connection is the edge between two users. PairKey is the canonical
// unordered pair; the partial unique index on it guarantees at most one
// live (non-rejected) connection per pair, so racing requests from both
// sides cannot produce two rows.
type Connection struct {
	gorm.Model
	SenderID    uint             `json:"sender" gorm:"index"`
	RecipientID uint             `json:"recipient" gorm:"index"`
	Status      ConnectionStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PairKey     string           `json:"-" gorm:"uniqueIndex:idx_connections_live_pair,where:status <> 'rejected' AND deleted_at IS NULL"`
	Sender      User             `json:"-" gorm:"foreignKey:SenderID"`
	Recipient   User             `json:"-" gorm:"foreignKey:RecipientID"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// PairKey canonicalizes an unordered user pair as "lo:hi"
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// PeerID returns the other participant of the connection
func (c *Connection) PeerID(userID uint) uint {
	if c.SenderID == userID {
		return c.RecipientID
	}
	return c.SenderID
}

// Involves reports whether the user is one of the two participants
func (c *Connection) Involves(userID uint) bool {
	return c.SenderID == userID || c.RecipientID == userID
}
