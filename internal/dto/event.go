package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
)

// EventDTO represents an event in API responses
type EventDTO struct {
	ID                   uuid.UUID          `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	ImageURL             string             `json:"image_url"`
	StartDate            time.Time          `json:"start_date"`
	EndDate              *time.Time         `json:"end_date"`
	Location             string             `json:"location"`
	MaxParticipants      *int               `json:"max_participants"`
	TeamSize             *int               `json:"team_size"`
	IsTeamEvent          bool               `json:"is_team_event"`
	RegistrationDeadline *time.Time         `json:"registration_deadline"`
	Status               models.EventStatus `json:"status"`
	OrganizerID          uuid.UUID          `json:"organizer_id"`
	CreatedAt            time.Time          `json:"created_at"`
}

// RegistrationDTO represents an event registration
type RegistrationDTO struct {
	ID        uuid.UUID                 `json:"id"`
	EventID   uuid.UUID                 `json:"event_id"`
	Status    models.RegistrationStatus `json:"status"`
	User      *UserDTO                  `json:"user,omitempty"`
	Team      *TeamDTO                  `json:"team,omitempty"`
	CreatedAt time.Time                 `json:"created_at"`
}

// EventDetailDTO represents an event with its registrations
type EventDetailDTO struct {
	EventDTO
	Registrations []RegistrationDTO `json:"registrations"`
}

// ToEventDTO converts an event model to its DTO
func ToEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		ImageURL:             event.ImageURL,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		Location:             event.Location,
		MaxParticipants:      event.MaxParticipants,
		TeamSize:             event.TeamSize,
		IsTeamEvent:          event.IsTeamEvent,
		RegistrationDeadline: event.RegistrationDeadline,
		Status:               event.Status,
		OrganizerID:          event.OrganizerID,
		CreatedAt:            event.CreatedAt,
	}
}

// ToEventDTOs converts a slice of event models
func ToEventDTOs(events []models.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = ToEventDTO(e)
	}
	return dtos
}

// ToRegistrationDTO converts a registration to its DTO
func ToRegistrationDTO(registration models.EventRegistration) RegistrationDTO {
	dto := RegistrationDTO{
		ID:        registration.ID,
		EventID:   registration.EventID,
		Status:    registration.Status,
		CreatedAt: registration.CreatedAt,
	}
	if registration.User != nil {
		user := ToUserDTO(*registration.User)
		dto.User = &user
	}
	if registration.Team != nil {
		team := ToTeamDTO(*registration.Team)
		dto.Team = &team
	}
	return dto
}

// ToEventDetailDTO converts an event with registrations to a detailed DTO
func ToEventDetailDTO(event models.Event, registrations []models.EventRegistration) EventDetailDTO {
	registrationDTOs := make([]RegistrationDTO, len(registrations))
	for i, r := range registrations {
		registrationDTOs[i] = ToRegistrationDTO(r)
	}

	return EventDetailDTO{
		EventDTO:      ToEventDTO(event),
		Registrations: registrationDTOs,
	}
}
