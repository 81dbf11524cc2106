package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRole string

const (
	RoleOwner   TeamRole = "owner"
	RoleCaptain TeamRole = "captain"
	RoleMember  TeamRole = "member"
)

type TeamMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user" json:"team_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user" json:"user_id"`
	Role      TeamRole  `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *TeamMember) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
