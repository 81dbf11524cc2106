package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/database"
	"github.com/shirokane/esports-hub-api/internal/dto"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/repository"
	"github.com/shirokane/esports-hub-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type eventTestEnv struct {
	db           *gorm.DB
	handler      *EventHandler
	eventService *services.EventService
	teamService  *services.TeamService
}

func setupEventTestEnv(t *testing.T) eventTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamInvitation{},
		&models.Event{},
		&models.EventRegistration{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	teamRepo := repository.NewTeamRepository(db)
	eventRepo := repository.NewEventRepository(db)
	teamService := services.NewTeamService(teamRepo, nil)
	eventService := services.NewEventService(eventRepo, teamRepo)
	handler := NewEventHandler(eventService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return eventTestEnv{
		db:           db,
		handler:      handler,
		eventService: eventService,
		teamService:  teamService,
	}
}

func createTestEvent(t *testing.T, env eventTestEnv, organizer *models.User, mutate func(*services.CreateEventInput)) *models.Event {
	input := services.CreateEventInput{
		Title:       "Summer Cup",
		StartDate:   time.Now().Add(72 * time.Hour),
		OrganizerID: organizer.ID,
	}
	if mutate != nil {
		mutate(&input)
	}

	event, err := env.eventService.CreateEvent(input)
	require.NoError(t, err)
	return event
}

func registerBody(t *testing.T, teamID uuid.UUID) []byte {
	body, err := json.Marshal(map[string]uuid.UUID{"team_id": teamID})
	require.NoError(t, err)
	return body
}

func TestEventHandler_CreateEvent(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")

	deadline := time.Now().Add(24 * time.Hour).UTC()
	payload := map[string]any{
		"title":                 "Summer Cup",
		"description":           "Annual 5v5 tournament",
		"start_date":            time.Now().Add(72 * time.Hour).UTC(),
		"is_team_event":         true,
		"max_participants":      16,
		"team_size":             5,
		"registration_deadline": deadline,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := teamTestContext(http.MethodPost, "/api/events", body, organizer.ID, nil)

	env.handler.CreateEvent(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.EventDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Summer Cup", response.Title)
	require.Equal(t, models.EventStatusUpcoming, response.Status)
	require.True(t, response.IsTeamEvent)
	require.NotNil(t, response.MaxParticipants)
	require.Equal(t, 16, *response.MaxParticipants)
}

func TestEventHandler_UpdateEvent_OrganizerOrAdmin(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	outsider := createTestTeamUser(t, env.db, "outsider")
	admin := createTestTeamUser(t, env.db, "admin")
	require.NoError(t, env.db.Model(admin).Update("is_admin", true).Error)

	event := createTestEvent(t, env, organizer, nil)

	body, err := json.Marshal(map[string]string{"title": "Renamed Cup"})
	require.NoError(t, err)

	c, w := teamTestContext(http.MethodPut, "/api/events/"+event.ID.String(), body, outsider.ID, idParam(event.ID))
	env.handler.UpdateEvent(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Platform admins moderate any event.
	c, w = teamTestContext(http.MethodPut, "/api/events/"+event.ID.String(), body, admin.ID, idParam(event.ID))
	env.handler.UpdateEvent(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.EventDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Renamed Cup", response.Title)
}

func TestEventHandler_DeleteEvent_RemovesRegistrations(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	player := createTestTeamUser(t, env.db, "player")
	event := createTestEvent(t, env, organizer, nil)

	_, err := env.eventService.Register(services.RegisterInput{
		EventID: event.ID,
		UserID:  player.ID,
	})
	require.NoError(t, err)

	c, w := teamTestContext(http.MethodDelete, "/api/events/"+event.ID.String(), nil, organizer.ID, idParam(event.ID))
	env.handler.DeleteEvent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&count)
	require.Zero(t, count)
}

func TestEventHandler_Register_Individual(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	player := createTestTeamUser(t, env.db, "player")
	event := createTestEvent(t, env, organizer, nil)

	c, w := teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", nil, player.ID, idParam(event.ID))
	env.handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.RegistrationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.RegistrationStatusConfirmed, response.Status)

	// Registering twice for the same event is rejected.
	c, w = teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", nil, player.ID, idParam(event.ID))
	env.handler.Register(c)

	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	env.db.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestEventHandler_Register_DeadlinePassed(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	player := createTestTeamUser(t, env.db, "player")
	event := createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		deadline := time.Now().Add(-time.Hour)
		input.RegistrationDeadline = &deadline
	})

	c, w := teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", nil, player.ID, idParam(event.ID))
	env.handler.Register(c)

	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	env.db.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&count)
	require.Zero(t, count)
}

func TestEventHandler_Register_TypeMismatch(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	player := createTestTeamUser(t, env.db, "player")
	team := createTestTeam(t, env.teamService, player, "Phoenix Squad")

	teamEvent := createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		input.IsTeamEvent = true
	})
	soloEvent := createTestEvent(t, env, organizer, nil)

	// A team event cannot take an individual registration.
	c, w := teamTestContext(http.MethodPost, "/api/events/"+teamEvent.ID.String()+"/register", nil, player.ID, idParam(teamEvent.ID))
	env.handler.Register(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// An individual event cannot take a team registration.
	c, w = teamTestContext(http.MethodPost, "/api/events/"+soloEvent.ID.String()+"/register", registerBody(t, team.ID), player.ID, idParam(soloEvent.ID))
	env.handler.Register(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandler_Register_TeamEvent(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	owner := createTestTeamUser(t, env.db, "owner")
	member := createTestTeamUser(t, env.db, "member")
	outsider := createTestTeamUser(t, env.db, "outsider")

	team := createTestTeam(t, env.teamService, owner, "Phoenix Squad")
	addTestMember(t, env.db, team, member, models.RoleMember)

	event := createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		input.IsTeamEvent = true
	})

	// Non-members cannot register a team they do not belong to.
	c, w := teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", registerBody(t, team.ID), outsider.ID, idParam(event.ID))
	env.handler.Register(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Any member may register the team, not just the owner.
	c, w = teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", registerBody(t, team.ID), member.ID, idParam(event.ID))
	env.handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	// The team holds one registration regardless of who acts for it.
	c, w = teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", registerBody(t, team.ID), owner.ID, idParam(event.ID))
	env.handler.Register(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestEventHandler_Register_CapacityReached(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	first := createTestTeamUser(t, env.db, "first")
	second := createTestTeamUser(t, env.db, "second")

	event := createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		capacity := 1
		input.MaxParticipants = &capacity
	})

	c, w := teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", nil, first.ID, idParam(event.ID))
	env.handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", nil, second.ID, idParam(event.ID))
	env.handler.Register(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	env.db.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestEventHandler_Unregister(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	player := createTestTeamUser(t, env.db, "player")
	event := createTestEvent(t, env, organizer, nil)

	_, err := env.eventService.Register(services.RegisterInput{
		EventID: event.ID,
		UserID:  player.ID,
	})
	require.NoError(t, err)

	c, w := teamTestContext(http.MethodDelete, "/api/events/"+event.ID.String()+"/register", nil, player.ID, idParam(event.ID))
	env.handler.Unregister(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&count)
	require.Zero(t, count)

	// The slot is free again after unregistering.
	c, w = teamTestContext(http.MethodPost, "/api/events/"+event.ID.String()+"/register", nil, player.ID, idParam(event.ID))
	env.handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestEventHandler_Unregister_NotRegistered(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	player := createTestTeamUser(t, env.db, "player")
	event := createTestEvent(t, env, organizer, nil)

	c, w := teamTestContext(http.MethodDelete, "/api/events/"+event.ID.String()+"/register", nil, player.ID, idParam(event.ID))
	env.handler.Unregister(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventHandler_Unregister_TeamEventByOtherMember(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	owner := createTestTeamUser(t, env.db, "owner")
	member := createTestTeamUser(t, env.db, "member")

	team := createTestTeam(t, env.teamService, owner, "Phoenix Squad")
	addTestMember(t, env.db, team, member, models.RoleMember)

	event := createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		input.IsTeamEvent = true
	})

	teamID := team.ID
	_, err := env.eventService.Register(services.RegisterInput{
		EventID: event.ID,
		UserID:  owner.ID,
		TeamID:  &teamID,
	})
	require.NoError(t, err)

	// Another member of the registered team may withdraw it.
	c, w := teamTestContext(http.MethodDelete, "/api/events/"+event.ID.String()+"/register", nil, member.ID, idParam(event.ID))
	env.handler.Unregister(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&count)
	require.Zero(t, count)
}

func TestEventHandler_ListEvents(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		input.Title = "Spring Open"
		input.StartDate = time.Now().Add(24 * time.Hour)
	})
	createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		input.Title = "Summer Cup"
		input.StartDate = time.Now().Add(96 * time.Hour)
	})

	c, w := teamTestContext(http.MethodGet, "/api/events", nil, uuid.Nil, nil)
	env.handler.ListEvents(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.EventDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	events := response["events"]
	require.Len(t, events, 2)
	require.Equal(t, "Spring Open", events[0].Title)
	require.Equal(t, "Summer Cup", events[1].Title)
}

func TestEventHandler_ListMyEvents(t *testing.T) {
	env := setupEventTestEnv(t)

	organizer := createTestTeamUser(t, env.db, "organizer")
	player := createTestTeamUser(t, env.db, "player")

	team := createTestTeam(t, env.teamService, player, "Phoenix Squad")

	soloEvent := createTestEvent(t, env, organizer, nil)
	teamEvent := createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		input.IsTeamEvent = true
	})
	createTestEvent(t, env, organizer, func(input *services.CreateEventInput) {
		input.Title = "Unrelated"
	})

	_, err := env.eventService.Register(services.RegisterInput{
		EventID: soloEvent.ID,
		UserID:  player.ID,
	})
	require.NoError(t, err)

	teamID := team.ID
	_, err = env.eventService.Register(services.RegisterInput{
		EventID: teamEvent.ID,
		UserID:  player.ID,
		TeamID:  &teamID,
	})
	require.NoError(t, err)

	c, w := teamTestContext(http.MethodGet, "/api/events/mine", nil, player.ID, nil)
	env.handler.ListMyEvents(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.EventDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response["events"], 2)
}
