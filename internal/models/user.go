package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Username        string    `gorm:"type:varchar(100);not null" json:"username"`
	AvatarURL       string    `gorm:"type:varchar(512)" json:"avatar_url"`
	DiscordID       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"discord_id"`
	DiscordUsername string    `gorm:"type:varchar(100)" json:"discord_username"`
	Bio             string    `gorm:"type:text" json:"bio"`
	IsAdmin         bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Memberships     []TeamMember `gorm:"foreignKey:UserID" json:"-"`
	OrganizedEvents []Event      `gorm:"foreignKey:OrganizerID" json:"-"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
