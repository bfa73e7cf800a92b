package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is a direct-message thread between two users. Like
// connections, the unordered pair is canonicalized so there is a single
// thread per pair.
type Conversation struct {
	gorm.Model
	ParticipantAID uint      `json:"participantA" gorm:"index"`
	ParticipantBID uint      `json:"participantB" gorm:"index"`
	PairKey        string    `json:"-" gorm:"uniqueIndex"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
	ParticipantA   User      `json:"-" gorm:"foreignKey:ParticipantAID"`
	ParticipantB   User      `json:"-" gorm:"foreignKey:ParticipantBID"`
}

// PeerID returns the other participant of the conversation
func (c *Conversation) PeerID(userID uint) uint {
	if c.ParticipantAID == userID {
		return c.ParticipantBID
	}
	return c.ParticipantAID
}

// Involves reports whether the user is one of the two participants
func (c *Conversation) Involves(userID uint) bool {
	return c.ParticipantAID == userID || c.ParticipantBID == userID
}

type Message struct {
	gorm.Model
	ConversationID uint   `json:"conversation" gorm:"index"`
	SenderID       uint   `json:"sender" gorm:"index"`
	Content        string `json:"content" gorm:"type:text"`
	Read           bool   `json:"read"`
	Sender         User   `json:"-" gorm:"foreignKey:SenderID"`
}

type ConversationDto struct {
	ID            uint      `json:"_id"`
	Peer          UserDto   `json:"peer"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	UnreadCount   int64     `json:"unreadCount"`
}

type MessageDto struct {
	ID        uint      `json:"_id"`
	Sender    UserDto   `json:"sender"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
