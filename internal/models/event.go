package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primarykey" json:"id"`
	Title                string      `gorm:"type:varchar(255);not null" json:"title"`
	Description          string      `gorm:"type:text;not null" json:"description"`
	ImageURL             string      `gorm:"type:varchar(512)" json:"image_url"`
	StartDate            time.Time   `gorm:"not null" json:"start_date"`
	EndDate              *time.Time  `json:"end_date"`
	Location             string      `gorm:"type:varchar(255)" json:"location"`
	MaxParticipants      *int        `json:"max_participants"`
	TeamSize             *int        `json:"team_size"`
	IsTeamEvent          bool        `gorm:"not null;default:false" json:"is_team_event"`
	RegistrationDeadline *time.Time  `json:"registration_deadline"`
	Status               EventStatus `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`
	OrganizerID          uuid.UUID   `gorm:"type:uuid;not null" json:"organizer_id"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`

	// Relations
	Organizer     User                `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Registrations []EventRegistration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// RegistrationOpen reports whether the registration deadline, if any, has
// not yet passed.
func (e *Event) RegistrationOpen(now time.Time) bool {
	return e.RegistrationDeadline == nil || now.Before(*e.RegistrationDeadline)
}
