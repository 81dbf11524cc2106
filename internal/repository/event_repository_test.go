package repository

import (
	"testing"
	"time"

	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamInvitation{},
		&models.Event{},
		&models.EventRegistration{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// Two inserts for the same (event, user) race past the service-level
// duplicate check; the unique index must surface as gorm.ErrDuplicatedKey
// so the loser gets the duplicate-registration response, not a 500.
func TestCreateRegistration_DuplicateTranslated(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewEventRepository(db)

	user := &models.User{Username: "player", DiscordID: "discord-player"}
	require.NoError(t, db.Create(user).Error)
	event := &models.Event{
		Title:       "Summer Cup",
		Description: "Open bracket",
		StartDate:   time.Now().Add(72 * time.Hour),
		OrganizerID: user.ID,
		Status:      models.EventStatusUpcoming,
	}
	require.NoError(t, db.Create(event).Error)

	userID := user.ID
	first := &models.EventRegistration{
		EventID: event.ID,
		UserID:  &userID,
		Status:  models.RegistrationStatusConfirmed,
	}
	require.NoError(t, repo.CreateRegistration(first, nil))

	second := &models.EventRegistration{
		EventID: event.ID,
		UserID:  &userID,
		Status:  models.RegistrationStatusConfirmed,
	}
	err := repo.CreateRegistration(second, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&models.EventRegistration{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

// The capped insert path shares the transaction with the count check and
// must translate the same way.
func TestCreateRegistration_DuplicateTranslatedWithCap(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewEventRepository(db)

	user := &models.User{Username: "player", DiscordID: "discord-player"}
	require.NoError(t, db.Create(user).Error)
	maxParticipants := 16
	event := &models.Event{
		Title:           "Summer Cup",
		Description:     "Open bracket",
		StartDate:       time.Now().Add(72 * time.Hour),
		MaxParticipants: &maxParticipants,
		OrganizerID:     user.ID,
		Status:          models.EventStatusUpcoming,
	}
	require.NoError(t, db.Create(event).Error)

	userID := user.ID
	require.NoError(t, repo.CreateRegistration(&models.EventRegistration{
		EventID: event.ID,
		UserID:  &userID,
		Status:  models.RegistrationStatusConfirmed,
	}, event.MaxParticipants))

	err := repo.CreateRegistration(&models.EventRegistration{
		EventID: event.ID,
		UserID:  &userID,
		Status:  models.RegistrationStatusConfirmed,
	}, event.MaxParticipants)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
