package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/repository"
	"github.com/shirokane/esports-hub-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNotPlatformAdmin           = errors.New("platform admin privileges required")
	ErrCannotChangeOwnAdminStatus = errors.New("cannot change your own admin status")
)

// AdminService provides the platform moderation views and user role
// management. Platform admin status gates every operation here.
type AdminService struct {
	userRepo  repository.UserRepository
	teamRepo  repository.TeamRepository
	eventRepo repository.EventRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repository.UserRepository, teamRepo repository.TeamRepository, eventRepo repository.EventRepository) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		eventRepo: eventRepo,
	}
}

// ListUsers returns a page of users for the moderation view.
func (s *AdminService) ListUsers(p Principal, params utils.PaginationParams) ([]models.User, int64, error) {
	if !p.IsAdmin {
		return nil, 0, ErrNotPlatformAdmin
	}

	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// SetUserAdmin grants or revokes platform admin on another user. Admins
// cannot change their own flag.
func (s *AdminService) SetUserAdmin(p Principal, targetID uuid.UUID, isAdmin bool) (*models.User, error) {
	if !p.IsAdmin {
		return nil, ErrNotPlatformAdmin
	}
	if p.UserID == targetID {
		return nil, ErrCannotChangeOwnAdminStatus
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.SetAdmin(targetID, isAdmin); err != nil {
		return nil, fmt.Errorf("failed to update admin flag: %w", err)
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

// ListTeams returns all teams for the moderation view.
func (s *AdminService) ListTeams(p Principal) ([]models.Team, error) {
	if !p.IsAdmin {
		return nil, ErrNotPlatformAdmin
	}

	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// ListEvents returns a page of events for the moderation view.
func (s *AdminService) ListEvents(p Principal, params utils.PaginationParams) ([]models.Event, int64, error) {
	if !p.IsAdmin {
		return nil, 0, ErrNotPlatformAdmin
	}

	events, total, err := s.eventRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}
