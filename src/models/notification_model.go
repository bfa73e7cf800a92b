package models

import (
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	RecipientID   uint             `json:"recipient" gorm:"index"`
	Type          NotificationType `json:"type" gorm:"type:varchar(30)"`
	RelatedUserID *uint            `json:"related_user,omitempty"`
	RelatedPostID *uint            `json:"related_post,omitempty"`
	Read          bool             `json:"read"`
	RelatedUser   *User            `json:"-" gorm:"foreignKey:RelatedUserID"`
	RelatedPost   *Post            `json:"-" gorm:"foreignKey:RelatedPostID"`
}

type NotificationType string

const (
	NotificationTypeLike               NotificationType = "like"
	NotificationTypeComment            NotificationType = "comment"
	NotificationTypeConnectionAccepted NotificationType = "connectionAccepted"
	NotificationTypeMessage            NotificationType = "message"
)
