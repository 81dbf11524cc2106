package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/constants"
	"github.com/shirokane/esports-hub-api/internal/logger"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/repository"
	"github.com/shirokane/esports-hub-api/internal/storage"
	"github.com/shirokane/esports-hub-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound            = errors.New("team not found")
	ErrTeamNameRequired        = errors.New("team name cannot be empty")
	ErrNotTeamOwner            = errors.New("only the team owner can perform this action")
	ErrNotTeamAdmin            = errors.New("only the team owner or a captain can perform this action")
	ErrCannotManageOwner       = errors.New("the team owner cannot be changed or removed")
	ErrCannotRemoveYourself    = errors.New("cannot remove yourself from the team")
	ErrTeamMemberNotFound      = errors.New("team member not found")
	ErrAlreadyTeamMember       = errors.New("user is already a member of this team")
	ErrInvalidRole             = errors.New("role must be captain or member")
	ErrCodeGenerationFailed    = errors.New("failed to generate invitation code")
	ErrInvalidInvitation       = errors.New("invitation code is invalid")
	ErrInvitationExpired       = errors.New("invitation code has expired")
	ErrInvitationAlreadyUsed   = errors.New("invitation code has already been used")
	ErrLogoStorageUnavailable  = errors.New("logo storage is not configured")
)

// TeamService owns the team membership lifecycle and authorization rules.
type TeamService struct {
	teamRepo repository.TeamRepository
	logos    storage.LogoStore
}

// NewTeamService creates a new TeamService. logos may be nil when object
// storage is not configured; logo operations then fail explicitly.
func NewTeamService(teamRepo repository.TeamRepository, logos storage.LogoStore) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		logos:    logos,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name        string
	Description string
	OwnerID     uuid.UUID
}

// CreateTeam creates a team and its owner membership atomically.
func (s *TeamService) CreateTeam(input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	owner := &models.TeamMember{
		UserID: input.OwnerID,
		Role:   models.RoleOwner,
	}

	if err := s.teamRepo.CreateWithOwner(team, owner); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// ListTeams returns all teams, newest first.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeamWithMembers returns a team and its members.
func (s *TeamService) GetTeamWithMembers(teamID uuid.UUID) (*models.Team, []models.TeamMember, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return team, members, nil
}

// ListTeamsForUser returns the memberships (with teams) of a user.
func (s *TeamService) ListTeamsForUser(userID uuid.UUID) ([]models.TeamMember, error) {
	memberships, err := s.teamRepo.ListMembershipsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return memberships, nil
}

// UpdateTeamInput carries optional team detail changes.
type UpdateTeamInput struct {
	Name        *string
	Description *string
}

// UpdateTeam updates team details. Owner only.
func (s *TeamService) UpdateTeam(p Principal, teamID uuid.UUID, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.findTeam(teamID)
	if err != nil {
		return nil, err
	}

	if !CanEditTeam(p, team) {
		return nil, ErrNotTeamOwner
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = *input.Name
	}
	if input.Description != nil {
		team.Description = *input.Description
	}

	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// DeleteTeam removes a team, cascading memberships, registrations, and
// invitations. Owner only. The logo object is removed after the commit;
// a storage failure there is logged and swallowed.
func (s *TeamService) DeleteTeam(ctx context.Context, p Principal, teamID uuid.UUID) error {
	team, err := s.findTeam(teamID)
	if err != nil {
		return err
	}

	if !CanDeleteTeam(p, team) {
		return ErrNotTeamOwner
	}

	if err := s.teamRepo.Delete(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.removeLogoObject(ctx, team.LogoURL)
	return nil
}

// UpdateLogo uploads a new logo object, points the team at it, and
// removes the previous object best-effort.
func (s *TeamService) UpdateLogo(ctx context.Context, p Principal, teamID uuid.UUID, filename, contentType string, r io.Reader, size int64) (*models.Team, error) {
	if s.logos == nil {
		return nil, ErrLogoStorageUnavailable
	}

	team, err := s.findTeam(teamID)
	if err != nil {
		return nil, err
	}

	if !CanUploadLogo(p, team) {
		return nil, ErrNotTeamOwner
	}

	ext := "png"
	if idx := strings.LastIndex(filename, "."); idx >= 0 && idx < len(filename)-1 {
		ext = filename[idx+1:]
	}
	objectName := fmt.Sprintf("team-logos/%s-%d.%s", teamID, time.Now().UnixNano(), ext)

	publicURL, err := s.logos.Upload(ctx, objectName, r, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	previousURL := team.LogoURL
	team.LogoURL = publicURL
	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team logo: %w", err)
	}

	s.removeLogoObject(ctx, previousURL)
	return team, nil
}

// IssueInvitation creates a single-use join code valid for seven days.
// Owner or captain only.
func (s *TeamService) IssueInvitation(p Principal, teamID uuid.UUID) (*models.TeamInvitation, error) {
	if _, err := s.findTeam(teamID); err != nil {
		return nil, err
	}

	caller, err := s.teamRepo.FindMember(teamID, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotTeamAdmin
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	if caller.Role != models.RoleOwner && caller.Role != models.RoleCaptain {
		return nil, ErrNotTeamAdmin
	}

	code, err := utils.GenerateInvitationCode()
	if err != nil {
		return nil, ErrCodeGenerationFailed
	}

	invitation := &models.TeamInvitation{
		TeamID:    teamID,
		InviterID: p.UserID,
		Code:      code,
		ExpiresAt: time.Now().AddDate(0, 0, constants.InvitationValidDays),
		Status:    models.InvitationStatusPending,
	}

	if err := s.teamRepo.CreateInvitation(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, nil
}

// JoinByInvitation redeems an invitation code for the calling user.
// Checks run in order: existence, expiry, then single-use status, so an
// expired code reports expiry regardless of its stored status. Nothing is
// mutated on any failure.
func (s *TeamService) JoinByInvitation(userID uuid.UUID, code string) (*models.Team, error) {
	invitation, err := s.teamRepo.FindInvitationByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInvitation
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if invitation.Expired(time.Now()) {
		return nil, ErrInvitationExpired
	}
	if invitation.Status != models.InvitationStatusPending {
		return nil, ErrInvitationAlreadyUsed
	}

	if _, err := s.teamRepo.FindMember(invitation.TeamID, userID); err == nil {
		return nil, ErrAlreadyTeamMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.TeamMember{
		TeamID: invitation.TeamID,
		UserID: userID,
		Role:   models.RoleMember,
	}

	if err := s.teamRepo.RedeemInvitation(invitation.ID, member); err != nil {
		if errors.Is(err, repository.ErrInvitationNotPending) {
			return nil, ErrInvitationAlreadyUsed
		}
		// Concurrent join racing past the membership check above lands on
		// the (team_id, user_id) unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to redeem invitation: %w", err)
	}

	team, err := s.teamRepo.FindByID(invitation.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load joined team: %w", err)
	}
	return team, nil
}

// ChangeMemberRole promotes or demotes a member between captain and
// member. Owner only; the owner role is never assignable or removable.
func (s *TeamService) ChangeMemberRole(p Principal, teamID, targetUserID uuid.UUID, role models.TeamRole) (*models.TeamMember, error) {
	if role != models.RoleCaptain && role != models.RoleMember {
		return nil, ErrInvalidRole
	}

	team, err := s.findTeam(teamID)
	if err != nil {
		return nil, err
	}
	if p.UserID != team.OwnerID {
		return nil, ErrNotTeamOwner
	}

	target, err := s.teamRepo.FindMember(teamID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	if target.Role == models.RoleOwner {
		return nil, ErrCannotManageOwner
	}

	if err := s.teamRepo.UpdateMemberRole(teamID, targetUserID, role); err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}

	target.Role = role
	return target, nil
}

// RemoveMember removes a member from a team. Owners and captains may
// remove members; the owner membership is untouchable, as is one's own.
func (s *TeamService) RemoveMember(p Principal, teamID, targetUserID uuid.UUID) error {
	if p.UserID == targetUserID {
		return ErrCannotRemoveYourself
	}

	if _, err := s.findTeam(teamID); err != nil {
		return err
	}

	caller, err := s.teamRepo.FindMember(teamID, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotTeamAdmin
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	target, err := s.teamRepo.FindMember(teamID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to find team member: %w", err)
	}

	if !CanManageMembers(caller, target) {
		if target.Role == models.RoleOwner {
			return ErrCannotManageOwner
		}
		return ErrNotTeamAdmin
	}

	if err := s.teamRepo.RemoveMember(teamID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

func (s *TeamService) findTeam(teamID uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

func (s *TeamService) removeLogoObject(ctx context.Context, logoURL string) {
	if s.logos == nil || logoURL == "" {
		return
	}
	objectName := s.logos.ObjectNameFromURL(logoURL)
	if objectName == "" {
		return
	}
	if err := s.logos.Remove(ctx, objectName); err != nil {
		logger.L().Warnw("failed to remove stale logo object", "object", objectName, "error", err)
	}
}
