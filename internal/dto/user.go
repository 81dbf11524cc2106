package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	AvatarURL       string    `json:"avatar_url"`
	DiscordUsername string    `json:"discord_username"`
	Bio             string    `json:"bio"`
	IsAdmin         bool      `json:"is_admin"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToUserDTO converts a user model to its DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Username:        user.Username,
		AvatarURL:       user.AvatarURL,
		DiscordUsername: user.DiscordUsername,
		Bio:             user.Bio,
		IsAdmin:         user.IsAdmin,
		CreatedAt:       user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of user models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}
