package models

import (
	"time"

	"gorm.io/gorm"
)

// SponsoredAd is an advertiser-owned placement shown alongside the feed.
// Targeting and serving decisions live outside this service; the backend
// only stores placements and tallies impressions/clicks.
type SponsoredAd struct {
	gorm.Model
	AdvertiserID uint   `json:"advertiser" gorm:"index"`
	Title        string `json:"title"`
	Body         string `json:"body" gorm:"type:text"`
	Image        string `json:"image"`
	LinkURL      string `json:"linkUrl"`
	Active       bool   `json:"active" gorm:"default:true"`
	Impressions  uint   `json:"impressions"`
	Clicks       uint   `json:"clicks"`
	Advertiser   User   `json:"-" gorm:"foreignKey:AdvertiserID"`
}

type SponsoredAdDto struct {
	ID         uint      `json:"_id"`
	Advertiser UserDto   `json:"advertiser"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Image      string    `json:"image"`
	LinkURL    string    `json:"linkUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}
