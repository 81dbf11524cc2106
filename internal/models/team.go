package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	LogoURL     string    `gorm:"type:varchar(512)" json:"logo_url"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner       User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members     []TeamMember     `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Invitations []TeamInvitation `gorm:"foreignKey:TeamID" json:"-"`
}

func (t *Team) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
