package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateTeam is returned when the team insert fails inside the creation transaction.
	ErrCreateTeam = errors.New("team repository: create team failed")
	// ErrCreateOwnerMembership is returned when the owner membership insert fails inside the creation transaction.
	ErrCreateOwnerMembership = errors.New("team repository: create owner membership failed")
	// ErrInvitationNotPending is returned when a redemption loses the race for a pending invitation.
	ErrInvitationNotPending = errors.New("team repository: invitation is no longer pending")
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithOwner creates the team and its owner membership atomically.
func (r *GormTeamRepository) CreateWithOwner(team *models.Team, owner *models.TeamMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTeam, err)
		}

		owner.TeamID = team.ID
		owner.Role = models.RoleOwner

		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOwnerMembership, err)
		}

		return nil
	})
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// List returns all teams, newest first
func (r *GormTeamRepository) List() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Order("created_at DESC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete removes a team and all rows keyed to it in a transaction
func (r *GormTeamRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.EventRegistration{}).Error; err != nil {
			return err
		}

		if err := tx.Where("team_id = ?", id).Delete(&models.TeamInvitation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Team{}, "id = ?", id).Error; err != nil {
			return err
		}

		return nil
	})
}

// AddMember adds a member to a team
func (r *GormTeamRepository) AddMember(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a team
func (r *GormTeamRepository) RemoveMember(teamID, userID uuid.UUID) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{}).Error
}

// UpdateMemberRole changes a member's role
func (r *GormTeamRepository) UpdateMemberRole(teamID, userID uuid.UUID, role models.TeamRole) error {
	return r.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("role", role).Error
}

// FindMember finds a specific team member
func (r *GormTeamRepository) FindMember(teamID, userID uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a team, grouped by role
func (r *GormTeamRepository) ListMembers(teamID uuid.UUID) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Preload("User").
		Where("team_id = ?", teamID).
		Order("role ASC, created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUser lists all teams a user is a member of
func (r *GormTeamRepository) ListMembershipsByUser(userID uuid.UUID) ([]models.TeamMember, error) {
	var memberships []models.TeamMember
	if err := r.db.Preload("Team").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CreateInvitation stores a new invitation
func (r *GormTeamRepository) CreateInvitation(invitation *models.TeamInvitation) error {
	return r.db.Create(invitation).Error
}

// FindInvitationByCode finds an invitation by its code
func (r *GormTeamRepository) FindInvitationByCode(code string) (*models.TeamInvitation, error) {
	var invitation models.TeamInvitation
	if err := r.db.Where("code = ?", code).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// RedeemInvitation flips the invitation to accepted and inserts the new
// membership atomically. The UPDATE is guarded on the current status, so
// of two concurrent redemptions only one sees an affected row.
func (r *GormTeamRepository) RedeemInvitation(invitationID uuid.UUID, member *models.TeamMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.TeamInvitation{}).
			Where("id = ? AND status = ?", invitationID, models.InvitationStatusPending).
			Update("status", models.InvitationStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvitationNotPending
		}

		if err := tx.Create(member).Error; err != nil {
			return err
		}

		return nil
	})
}
