package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleDispatcher UserRole = "dispatcher"
	RoleCarrier    UserRole = "carrier"
	RoleBroker     UserRole = "broker"
	RoleAdvertiser UserRole = "advertiser"
)

type User struct {
	gorm.Model
	Name           string   `json:"name"`
	Username       string   `json:"username" gorm:"uniqueIndex"`
	Email          string   `json:"email" gorm:"uniqueIndex"`
	Password       string   `json:"password,omitempty"`
	CompanyName    string   `json:"companyName"`
	Role           UserRole `json:"role" gorm:"type:varchar(20);default:'dispatcher'"`
	Verified       bool     `json:"verified"`
	ProfilePicture string   `json:"profile_picture"`
	CoverPicture   string   `json:"cover_picture"`
	HeadLine       string   `json:"headline"`
	About          string   `json:"about"`
	Location       string   `json:"location"`

	// Dispatcher profile fields
	YearsExperience        int                `json:"yearsExperience"`
	Specialties            []string           `json:"specialties" gorm:"serializer:json"`
	CarriersWorkedWith     []CarrierReference `json:"carriersWorkedWith" gorm:"foreignKey:UserID"`
	CarrierScoutSubscribed bool               `json:"carrierScoutSubscribed"`

	// Carrier profile fields
	MCNumber string `json:"mcNumber"`
}

// MarshalJSON customizes serialization to expose ID as _id
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User
	return json.Marshal(&struct {
		ID uint `json:"_id"`
		*Alias
	}{
		ID:    u.ID,
		Alias: (*Alias)(&u),
	})
}

// IsDispatcher reports whether the user fills out the dispatcher side of the
// profile (experience, specialties, carrier references).
func (u *User) IsDispatcher() bool {
	return u.Role == RoleDispatcher
}

type UserDto struct {
	ID             uint     `json:"_id"`
	Name           string   `json:"name"`
	Username       string   `json:"username"`
	CompanyName    string   `json:"companyName,omitempty"`
	Role           UserRole `json:"role,omitempty"`
	ProfilePicture string   `json:"profilePicture"`
	Headline       string   `json:"headline,omitempty"`
}

// ToDto strips a user down to the fields embedded in other payloads
func (u *User) ToDto() UserDto {
	return UserDto{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		CompanyName:    u.CompanyName,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
		Headline:       u.HeadLine,
	}
}

// CarrierReference is a dispatcher's claim of having worked with a carrier.
// Verified is computed by cross-referencing, never set by the user.
type CarrierReference struct {
	gorm.Model
	UserID       uint       `json:"-" gorm:"index"`
	CarrierName  string     `json:"carrierName"`
	CarrierID    string     `json:"mcNumber"` // MC<digits> or DOT<digits>
	Verified     bool       `json:"verified"`
	DocumentFile string     `json:"documentFile,omitempty"`
	UploadedAt   *time.Time `json:"uploadedAt,omitempty"`
}

// NormalizeCarrierID strips everything but digits from a carrier identifier.
// Used only for duplicate detection between a user's own references; the
// verification match is done on the raw identifier string.
func NormalizeCarrierID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
