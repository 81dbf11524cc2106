package repository

import (
	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByDiscordID finds a user by their Discord account ID
	FindByDiscordID(discordID string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// List returns a page of users ordered by creation time, newest first
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// SetAdmin flips the platform admin flag on a user
	SetAdmin(id uuid.UUID, isAdmin bool) error
}

// TeamRepository defines the interface for team, membership, and
// invitation data access
type TeamRepository interface {
	// CreateWithOwner creates a team and its owner membership within a
	// single transaction. A team must never exist without its owner row.
	CreateWithOwner(team *models.Team, owner *models.TeamMember) error

	// FindByID finds a team by ID
	FindByID(id uuid.UUID) (*models.Team, error)

	// List returns all teams, newest first
	List() ([]models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete removes a team and cascades memberships, registrations, and
	// invitations in one transaction
	Delete(id uuid.UUID) error

	// AddMember adds a member to a team
	AddMember(member *models.TeamMember) error

	// RemoveMember removes a member from a team
	RemoveMember(teamID, userID uuid.UUID) error

	// UpdateMemberRole changes a member's role
	UpdateMemberRole(teamID, userID uuid.UUID, role models.TeamRole) error

	// FindMember finds a specific team member
	FindMember(teamID, userID uuid.UUID) (*models.TeamMember, error)

	// ListMembers lists all members of a team with their users
	ListMembers(teamID uuid.UUID) ([]models.TeamMember, error)

	// ListMembershipsByUser lists all teams a user belongs to
	ListMembershipsByUser(userID uuid.UUID) ([]models.TeamMember, error)

	// CreateInvitation stores a new invitation
	CreateInvitation(invitation *models.TeamInvitation) error

	// FindInvitationByCode finds an invitation by its code
	FindInvitationByCode(code string) (*models.TeamInvitation, error)

	// RedeemInvitation accepts a pending invitation and inserts the new
	// membership in one transaction. The status transition is conditional
	// on the row still being pending, so concurrent redemptions of the
	// same code succeed at most once.
	RedeemInvitation(invitationID uuid.UUID, member *models.TeamMember) error
}

// EventRepository defines the interface for event and registration data
// access
type EventRepository interface {
	// Create creates a new event
	Create(event *models.Event) error

	// FindByID finds an event by ID
	FindByID(id uuid.UUID) (*models.Event, error)

	// ListUpcoming returns upcoming events ordered by start date
	ListUpcoming() ([]models.Event, error)

	// List returns a page of events, newest first, for moderation views
	List(params utils.PaginationParams) ([]models.Event, int64, error)

	// Update updates an event
	Update(event *models.Event) error

	// Delete removes an event and its registrations in one transaction
	Delete(id uuid.UUID) error

	// CreateRegistration inserts a registration, enforcing the event's
	// participant cap inside the same transaction when one is set
	CreateRegistration(registration *models.EventRegistration, maxParticipants *int) error

	// FindRegistrationByUser finds a user's individual registration
	FindRegistrationByUser(eventID, userID uuid.UUID) (*models.EventRegistration, error)

	// FindRegistrationByTeams finds a registration held by any of the
	// given teams
	FindRegistrationByTeams(eventID uuid.UUID, teamIDs []uuid.UUID) (*models.EventRegistration, error)

	// ListRegistrations lists registrations for an event with their
	// users and teams
	ListRegistrations(eventID uuid.UUID) ([]models.EventRegistration, error)

	// DeleteRegistration removes a registration by its own ID
	DeleteRegistration(id uuid.UUID) error

	// ListEventsForUser returns events the user or any of their teams is
	// registered for, deduplicated
	ListEventsForUser(userID uuid.UUID, teamIDs []uuid.UUID) ([]models.Event, error)
}
