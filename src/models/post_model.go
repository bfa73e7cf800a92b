package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a feed entry. Dispatchers and carriers also use the feed to float
// loads, so a post can carry an optional lane (origin/destination plus
// equipment type) alongside its text.
type Post struct {
	gorm.Model
	AuthorID        uint      `json:"author" gorm:"index"`
	Content         string    `json:"content" gorm:"type:text"`
	Image           string    `json:"image"`
	LaneOrigin      string    `json:"laneOrigin"`
	LaneDestination string    `json:"laneDestination"`
	Equipment       string    `json:"equipment"` // dry van, reefer, flatbed, ...
	RepostID        *uint     `json:"repost"`
	Likes           []Like    `json:"likes" gorm:"foreignKey:PostID"`
	Comments        []Comment `json:"comments" gorm:"foreignKey:PostID"`
	Author          User      `json:"-" gorm:"foreignKey:AuthorID"`
	Repost          *Post     `json:"-" gorm:"foreignKey:RepostID"`
}

// HasLane reports whether the post advertises a load lane
func (p *Post) HasLane() bool {
	return p.LaneOrigin != "" && p.LaneDestination != ""
}

type PostDto struct {
	ID        uint         `json:"_id"`
	Author    UserDto      `json:"author"`
	Content   string       `json:"content"`
	Image     string       `json:"image"`
	Lane      *LaneDto     `json:"lane,omitempty"`
	Repost    *PostDto     `json:"repost,omitempty"`
	Likes     []UserDto    `json:"likes"`
	Comments  []CommentDto `json:"comments"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// LaneDto is only attached to a post when both endpoints are set
type LaneDto struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Equipment   string `json:"equipment,omitempty"`
}

// Lane builds the lane payload for the post, or nil when it has none
func (p *Post) Lane() *LaneDto {
	if !p.HasLane() {
		return nil
	}
	return &LaneDto{
		Origin:      p.LaneOrigin,
		Destination: p.LaneDestination,
		Equipment:   p.Equipment,
	}
}

type Comment struct {
	gorm.Model
	PostID  uint   `json:"post_id" gorm:"index"`
	UserID  uint   `json:"user_id" gorm:"index"`
	Content string `json:"content" gorm:"type:text"`
	User    User   `json:"-" gorm:"foreignKey:UserID"`
}

type CommentDto struct {
	ID        uint      `json:"_id"`
	Content   string    `json:"content"`
	User      UserDto   `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

type Like struct {
	gorm.Model
	PostID uint `json:"post_id" gorm:"index"`
	UserID uint `json:"user_id" gorm:"index"`
	User   User `json:"-" gorm:"foreignKey:UserID"`
}
