package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusRejected  RegistrationStatus = "rejected"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// EventRegistration binds exactly one of a user or a team to an event.
// The per-actor unique indexes back the double-registration guarantee;
// unregistering removes the row outright.
type EventRegistration struct {
	ID        uuid.UUID          `gorm:"type:uuid;primarykey" json:"id"`
	EventID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_user;uniqueIndex:idx_registrations_event_team" json:"event_id"`
	UserID    *uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_registrations_event_user" json:"user_id"`
	TeamID    *uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_registrations_event_team" json:"team_id"`
	Status    RegistrationStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User `gorm:"foreignKey:UserID" json:"registered_user,omitempty"`
	Team  *Team `gorm:"foreignKey:TeamID" json:"registered_team,omitempty"`
}

func (r *EventRegistration) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Active reports whether the registration still blocks a new one for the
// same (event, actor) pair.
func (r *EventRegistration) Active() bool {
	return r.Status == RegistrationStatusPending || r.Status == RegistrationStatusConfirmed
}
