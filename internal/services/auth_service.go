package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/oauth"
	"github.com/shirokane/esports-hub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameRequired = errors.New("username cannot be empty")
)

// AuthService resolves Discord identities into local users.
type AuthService struct {
	userRepo repository.UserRepository
	provider oauth.Provider
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, provider oauth.Provider) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		provider: provider,
	}
}

// SignInURL returns the provider URL for the OAuth redirect.
func (s *AuthService) SignInURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code and upserts the local
// user keyed by their Discord account ID. Profile fields are refreshed
// from the provider on every sign-in.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	discordUser, err := s.provider.FetchUser(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve discord identity: %w", err)
	}

	user, err := s.userRepo.FindByDiscordID(discordUser.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}

		user = &models.User{
			Username:        discordUser.DisplayName(),
			AvatarURL:       discordUser.AvatarURL(),
			DiscordID:       discordUser.ID,
			DiscordUsername: discordUser.Username,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	user.AvatarURL = discordUser.AvatarURL()
	user.DiscordUsername = discordUser.Username
	if user.Username == "" {
		user.Username = discordUser.DisplayName()
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput carries optional profile changes.
type UpdateProfileInput struct {
	Username *string
	Bio      *string
}

// UpdateProfile updates the caller's own profile fields.
func (s *AuthService) UpdateProfile(userID uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		if strings.TrimSpace(*input.Username) == "" {
			return nil, ErrUsernameRequired
		}
		user.Username = *input.Username
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
