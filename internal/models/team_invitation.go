package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// TeamInvitation is a single-use, time-limited join code for a team.
type TeamInvitation struct {
	ID        uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	TeamID    uuid.UUID        `gorm:"type:uuid;not null" json:"team_id"`
	InviterID uuid.UUID        `gorm:"type:uuid;not null" json:"inviter_id"`
	InviteeID *uuid.UUID       `gorm:"type:uuid" json:"invitee_id"`
	Code      string           `gorm:"type:varchar(16);uniqueIndex;not null" json:"code"`
	ExpiresAt time.Time        `gorm:"not null" json:"expires_at"`
	Status    InvitationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`

	// Relations
	Team    Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Inviter User `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
}

func (i *TeamInvitation) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the invitation's validity window has elapsed.
func (i *TeamInvitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
