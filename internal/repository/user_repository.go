package repository

import (
	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/database"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByDiscordID finds a user by their Discord account ID
func (r *GormUserRepository) FindByDiscordID(discordID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("discord_id = ?", discordID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List returns a page of users ordered by creation time, newest first
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.db.Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SetAdmin flips the platform admin flag on a user
func (r *GormUserRepository) SetAdmin(id uuid.UUID, isAdmin bool) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin).Error
}
