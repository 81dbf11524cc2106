package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventTitleRequired = errors.New("event title cannot be empty")
	ErrNotEventOrganizer  = errors.New("only the event organizer or an admin can perform this action")
	ErrEventTypeMismatch  = errors.New("registration kind does not match the event's mode")
	ErrRegistrationClosed = errors.New("the registration deadline for this event has passed")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrNotRegistered      = errors.New("no registration exists for this event")
	ErrEventFull          = errors.New("the event has reached its participant limit")
	ErrNotTeamMember      = errors.New("you are not a member of this team")
)

// EventService owns event CRUD and the registration state machine.
type EventService struct {
	eventRepo repository.EventRepository
	teamRepo  repository.TeamRepository
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, teamRepo repository.TeamRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
	}
}

// CreateEventInput represents parameters to create an event.
type CreateEventInput struct {
	Title                string
	Description          string
	ImageURL             string
	StartDate            time.Time
	EndDate              *time.Time
	Location             string
	MaxParticipants      *int
	TeamSize             *int
	IsTeamEvent          bool
	RegistrationDeadline *time.Time
	OrganizerID          uuid.UUID
}

// CreateEvent creates an event with the caller as organizer.
func (s *EventService) CreateEvent(input CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEventTitleRequired
	}

	event := &models.Event{
		Title:                input.Title,
		Description:          input.Description,
		ImageURL:             input.ImageURL,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		Location:             input.Location,
		MaxParticipants:      input.MaxParticipants,
		TeamSize:             input.TeamSize,
		IsTeamEvent:          input.IsTeamEvent,
		RegistrationDeadline: input.RegistrationDeadline,
		Status:               models.EventStatusUpcoming,
		OrganizerID:          input.OrganizerID,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// UpdateEventInput carries optional event changes.
type UpdateEventInput struct {
	Title                *string
	Description          *string
	ImageURL             *string
	StartDate            *time.Time
	EndDate              *time.Time
	Location             *string
	MaxParticipants      *int
	TeamSize             *int
	RegistrationDeadline *time.Time
	Status               *models.EventStatus
}

// UpdateEvent updates an event. Organizer or platform admin only.
func (s *EventService) UpdateEvent(p Principal, eventID uuid.UUID, input UpdateEventInput) (*models.Event, error) {
	event, err := s.findEvent(eventID)
	if err != nil {
		return nil, err
	}

	if !CanManageEvent(p, event) {
		return nil, ErrNotEventOrganizer
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrEventTitleRequired
		}
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.ImageURL != nil {
		event.ImageURL = *input.ImageURL
	}
	if input.StartDate != nil {
		event.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = input.EndDate
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.MaxParticipants != nil {
		event.MaxParticipants = input.MaxParticipants
	}
	if input.TeamSize != nil {
		event.TeamSize = input.TeamSize
	}
	if input.RegistrationDeadline != nil {
		event.RegistrationDeadline = input.RegistrationDeadline
	}
	if input.Status != nil {
		event.Status = *input.Status
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

// DeleteEvent removes an event and its registrations. Organizer or
// platform admin only.
func (s *EventService) DeleteEvent(p Principal, eventID uuid.UUID) error {
	event, err := s.findEvent(eventID)
	if err != nil {
		return err
	}

	if !CanManageEvent(p, event) {
		return ErrNotEventOrganizer
	}

	if err := s.eventRepo.Delete(eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// GetEventWithRegistrations returns an event and its registrations.
func (s *EventService) GetEventWithRegistrations(eventID uuid.UUID) (*models.Event, []models.EventRegistration, error) {
	event, err := s.findEvent(eventID)
	if err != nil {
		return nil, nil, err
	}

	registrations, err := s.eventRepo.ListRegistrations(eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	return event, registrations, nil
}

// ListUpcomingEvents returns upcoming events ordered by start date.
func (s *EventService) ListUpcomingEvents() ([]models.Event, error) {
	events, err := s.eventRepo.ListUpcoming()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListEventsForUser returns events the user or any of their teams is
// registered for.
func (s *EventService) ListEventsForUser(userID uuid.UUID) ([]models.Event, error) {
	memberships, err := s.teamRepo.ListMembershipsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	teamIDs := make([]uuid.UUID, len(memberships))
	for i, m := range memberships {
		teamIDs[i] = m.TeamID
	}

	events, err := s.eventRepo.ListEventsForUser(userID, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list user events: %w", err)
	}
	return events, nil
}

// RegisterInput identifies the event and the registering actor. TeamID is
// set for team events and nil for individual ones.
type RegisterInput struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	TeamID  *uuid.UUID
}

// Register creates a registration for the event. All preconditions run
// before the insert; nothing is written when any of them fails. For team
// events any member of the team may register it.
func (s *EventService) Register(input RegisterInput) (*models.EventRegistration, error) {
	event, err := s.findEvent(input.EventID)
	if err != nil {
		return nil, err
	}

	if event.IsTeamEvent != (input.TeamID != nil) {
		return nil, ErrEventTypeMismatch
	}

	if !event.RegistrationOpen(time.Now()) {
		return nil, ErrRegistrationClosed
	}

	registration := &models.EventRegistration{
		EventID: event.ID,
		Status:  models.RegistrationStatusConfirmed,
	}

	if event.IsTeamEvent {
		if _, err := s.teamRepo.FindMember(*input.TeamID, input.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotTeamMember
			}
			return nil, fmt.Errorf("failed to verify team membership: %w", err)
		}

		if _, err := s.eventRepo.FindRegistrationByTeams(event.ID, []uuid.UUID{*input.TeamID}); err == nil {
			return nil, ErrAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check registration: %w", err)
		}

		registration.TeamID = input.TeamID
	} else {
		if _, err := s.eventRepo.FindRegistrationByUser(event.ID, input.UserID); err == nil {
			return nil, ErrAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check registration: %w", err)
		}

		userID := input.UserID
		registration.UserID = &userID
	}

	if err := s.eventRepo.CreateRegistration(registration, event.MaxParticipants); err != nil {
		if errors.Is(err, repository.ErrEventCapacityReached) {
			return nil, ErrEventFull
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return registration, nil
}

// Unregister deletes the caller's registration for the event, resolved to
// its own row ID before the delete. For team events the registration of
// any team the caller belongs to qualifies.
func (s *EventService) Unregister(eventID, userID uuid.UUID) error {
	event, err := s.findEvent(eventID)
	if err != nil {
		return err
	}

	var registration *models.EventRegistration
	if event.IsTeamEvent {
		memberships, err := s.teamRepo.ListMembershipsByUser(userID)
		if err != nil {
			return fmt.Errorf("failed to list memberships: %w", err)
		}
		teamIDs := make([]uuid.UUID, len(memberships))
		for i, m := range memberships {
			teamIDs[i] = m.TeamID
		}

		registration, err = s.eventRepo.FindRegistrationByTeams(eventID, teamIDs)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotRegistered
			}
			return fmt.Errorf("failed to find registration: %w", err)
		}
	} else {
		registration, err = s.eventRepo.FindRegistrationByUser(eventID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotRegistered
			}
			return fmt.Errorf("failed to find registration: %w", err)
		}
	}

	if err := s.eventRepo.DeleteRegistration(registration.ID); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	return nil
}

func (s *EventService) findEvent(eventID uuid.UUID) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}
