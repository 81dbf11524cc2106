package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/dto"
	apierrors "github.com/shirokane/esports-hub-api/internal/errors"
	"github.com/shirokane/esports-hub-api/internal/middleware"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/services"
)

// EventHandler exposes the event and registration endpoints.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// ListEvents returns upcoming events ordered by start date. Public.
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListUpcomingEvents()
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": dto.ToEventDTOs(events),
	})
}

// GetEvent returns an event and its registrations. Public.
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	event, registrations, err := h.eventService.GetEventWithRegistrations(eventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDetailDTO(*event, registrations))
}

// ListMyEvents returns events the caller or their teams are registered for.
func (h *EventHandler) ListMyEvents(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	events, err := h.eventService.ListEventsForUser(userID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": dto.ToEventDTOs(events),
	})
}

// CreateEvent creates an event organized by the caller.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateEventRequest struct {
		Title                string     `json:"title" binding:"required,max=255"`
		Description          string     `json:"description"`
		ImageURL             string     `json:"image_url"`
		StartDate            time.Time  `json:"start_date" binding:"required"`
		EndDate              *time.Time `json:"end_date"`
		Location             string     `json:"location"`
		MaxParticipants      *int       `json:"max_participants"`
		TeamSize             *int       `json:"team_size"`
		IsTeamEvent          bool       `json:"is_team_event"`
		RegistrationDeadline *time.Time `json:"registration_deadline"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(services.CreateEventInput{
		Title:                req.Title,
		Description:          req.Description,
		ImageURL:             req.ImageURL,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Location:             req.Location,
		MaxParticipants:      req.MaxParticipants,
		TeamSize:             req.TeamSize,
		IsTeamEvent:          req.IsTeamEvent,
		RegistrationDeadline: req.RegistrationDeadline,
		OrganizerID:          userID,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*event))
}

// UpdateEvent updates an event. Organizer or admin only.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateEventRequest struct {
		Title                *string             `json:"title"`
		Description          *string             `json:"description"`
		ImageURL             *string             `json:"image_url"`
		StartDate            *time.Time          `json:"start_date"`
		EndDate              *time.Time          `json:"end_date"`
		Location             *string             `json:"location"`
		MaxParticipants      *int                `json:"max_participants"`
		TeamSize             *int                `json:"team_size"`
		RegistrationDeadline *time.Time          `json:"registration_deadline"`
		Status               *models.EventStatus `json:"status"`
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.UpdateEvent(principal, eventID, services.UpdateEventInput{
		Title:                req.Title,
		Description:          req.Description,
		ImageURL:             req.ImageURL,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Location:             req.Location,
		MaxParticipants:      req.MaxParticipants,
		TeamSize:             req.TeamSize,
		RegistrationDeadline: req.RegistrationDeadline,
		Status:               req.Status,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// DeleteEvent removes an event. Organizer or admin only.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(principal, eventID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}

// Register registers the caller (or one of their teams) for an event.
func (h *EventHandler) Register(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	type RegisterRequest struct {
		TeamID *uuid.UUID `json:"team_id"`
	}

	var req RegisterRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	registration, err := h.eventService.Register(services.RegisterInput{
		EventID: eventID,
		UserID:  userID,
		TeamID:  req.TeamID,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegistrationDTO(*registration))
}

// Unregister removes the caller's registration for an event.
func (h *EventHandler) Unregister(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Unregister(eventID, userID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully unregistered from event",
	})
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrNotRegistered):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEventTitleRequired),
		errors.Is(err, services.ErrEventTypeMismatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotEventOrganizer),
		errors.Is(err, services.ErrNotTeamMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrRegistrationClosed),
		errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrEventFull):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
