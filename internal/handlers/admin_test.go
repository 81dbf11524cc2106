package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shirokane/esports-hub-api/internal/database"
	"github.com/shirokane/esports-hub-api/internal/dto"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/repository"
	"github.com/shirokane/esports-hub-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type adminTestEnv struct {
	db      *gorm.DB
	handler *AdminHandler
}

func setupAdminTestEnv(t *testing.T) adminTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Event{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	eventRepo := repository.NewEventRepository(db)
	adminService := services.NewAdminService(userRepo, teamRepo, eventRepo)
	handler := NewAdminHandler(adminService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return adminTestEnv{
		db:      db,
		handler: handler,
	}
}

func createTestAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username:  username,
		DiscordID: "discord-" + username,
		IsAdmin:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestAdminHandler_ListUsers(t *testing.T) {
	env := setupAdminTestEnv(t)

	admin := createTestAdmin(t, env.db, "admin")
	createTestTeamUser(t, env.db, "player1")
	createTestTeamUser(t, env.db, "player2")

	c, w := teamTestContext(http.MethodGet, "/api/admin/users", nil, admin.ID, nil)
	env.handler.ListUsers(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Users []dto.UserDTO `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Users, 3)
}

func TestAdminHandler_ListUsers_NonAdminDenied(t *testing.T) {
	env := setupAdminTestEnv(t)

	user := createTestTeamUser(t, env.db, "player")

	c, w := teamTestContext(http.MethodGet, "/api/admin/users", nil, user.ID, nil)
	env.handler.ListUsers(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminHandler_SetUserAdmin(t *testing.T) {
	env := setupAdminTestEnv(t)

	admin := createTestAdmin(t, env.db, "admin")
	target := createTestTeamUser(t, env.db, "player")

	body, err := json.Marshal(map[string]bool{"is_admin": true})
	require.NoError(t, err)

	c, w := teamTestContext(http.MethodPatch, "/api/admin/users/x/admin", body, admin.ID, gin.Params{{Key: "user_id", Value: target.ID.String()}})
	env.handler.SetUserAdmin(c)

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, env.db.First(&updated, "id = ?", target.ID).Error)
	require.True(t, updated.IsAdmin)
}

func TestAdminHandler_SetUserAdmin_NeverSelf(t *testing.T) {
	env := setupAdminTestEnv(t)

	admin := createTestAdmin(t, env.db, "admin")

	body, err := json.Marshal(map[string]bool{"is_admin": false})
	require.NoError(t, err)

	c, w := teamTestContext(http.MethodPatch, "/api/admin/users/x/admin", body, admin.ID, gin.Params{{Key: "user_id", Value: admin.ID.String()}})
	env.handler.SetUserAdmin(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var self models.User
	require.NoError(t, env.db.First(&self, "id = ?", admin.ID).Error)
	require.True(t, self.IsAdmin)
}
