package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/database"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/utils"
	"gorm.io/gorm"
)

// ErrEventCapacityReached is returned when an insert would exceed the
// event's participant cap.
var ErrEventCapacityReached = errors.New("event repository: participant capacity reached")

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListUpcoming returns upcoming events ordered by start date
func (r *GormEventRepository) ListUpcoming() ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Where("status = ?", models.EventStatusUpcoming).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// List returns a page of events, newest first
func (r *GormEventRepository) List(params utils.PaginationParams) ([]models.Event, int64, error) {
	var total int64
	if err := r.db.Model(&models.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	if err := r.db.Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Update updates an event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete removes an event and its registrations in a transaction
func (r *GormEventRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventRegistration{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Event{}, "id = ?", id).Error; err != nil {
			return err
		}

		return nil
	})
}

// CreateRegistration inserts a registration. When the event carries a
// participant cap the count check and the insert share one transaction;
// the per-actor unique indexes keep concurrent duplicates out regardless.
func (r *GormEventRepository) CreateRegistration(registration *models.EventRegistration, maxParticipants *int) error {
	if maxParticipants == nil {
		return r.db.Create(registration).Error
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.EventRegistration{}).
			Where("event_id = ? AND status IN ?", registration.EventID,
				[]models.RegistrationStatus{models.RegistrationStatusPending, models.RegistrationStatusConfirmed}).
			Count(&count).Error; err != nil {
			return err
		}

		if count >= int64(*maxParticipants) {
			return ErrEventCapacityReached
		}

		return tx.Create(registration).Error
	})
}

// FindRegistrationByUser finds a user's individual registration
func (r *GormEventRepository) FindRegistrationByUser(eventID, userID uuid.UUID) (*models.EventRegistration, error) {
	var registration models.EventRegistration
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// FindRegistrationByTeams finds a registration held by any of the given teams
func (r *GormEventRepository) FindRegistrationByTeams(eventID uuid.UUID, teamIDs []uuid.UUID) (*models.EventRegistration, error) {
	if len(teamIDs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var registration models.EventRegistration
	if err := r.db.Where("event_id = ? AND team_id IN ?", eventID, teamIDs).
		First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// ListRegistrations lists registrations for an event
func (r *GormEventRepository) ListRegistrations(eventID uuid.UUID) ([]models.EventRegistration, error) {
	var registrations []models.EventRegistration
	if err := r.db.Preload("User").Preload("Team").
		Where("event_id = ?", eventID).
		Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}

// DeleteRegistration removes a registration by its own ID
func (r *GormEventRepository) DeleteRegistration(id uuid.UUID) error {
	return r.db.Delete(&models.EventRegistration{}, "id = ?", id).Error
}

// ListEventsForUser returns events the user or any of their teams is
// registered for, deduplicated by event ID
func (r *GormEventRepository) ListEventsForUser(userID uuid.UUID, teamIDs []uuid.UUID) ([]models.Event, error) {
	query := r.db.Model(&models.EventRegistration{}).
		Select("DISTINCT event_id")
	if len(teamIDs) > 0 {
		query = query.Where("user_id = ? OR team_id IN ?", userID, teamIDs)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	var eventIDs []uuid.UUID
	if err := query.Pluck("event_id", &eventIDs).Error; err != nil {
		return nil, err
	}
	if len(eventIDs) == 0 {
		return []models.Event{}, nil
	}

	var events []models.Event
	if err := r.db.Where("id IN ?", eventIDs).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
