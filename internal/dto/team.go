package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamMemberDTO represents a member in a team
type TeamMemberDTO struct {
	User     UserDTO         `json:"user"`
	Role     models.TeamRole `json:"role"`
	JoinedAt time.Time       `json:"joined_at"`
}

// TeamWithRoleDTO represents a team along with the caller's role in it
type TeamWithRoleDTO struct {
	TeamDTO
	Role models.TeamRole `json:"role"`
}

// TeamDetailDTO represents a team with its full member list
type TeamDetailDTO struct {
	TeamDTO
	Members []TeamMemberDTO `json:"members"`
}

// InvitationDTO represents an issued invitation code
type InvitationDTO struct {
	Code      string    `json:"code"`
	TeamID    uuid.UUID `json:"team_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToTeamDTO converts a team model to its DTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		LogoURL:     team.LogoURL,
		OwnerID:     team.OwnerID,
		CreatedAt:   team.CreatedAt,
	}
}

// ToTeamDTOs converts a slice of team models
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	dtos := make([]TeamDTO, len(teams))
	for i, t := range teams {
		dtos[i] = ToTeamDTO(t)
	}
	return dtos
}

// ToTeamMemberDTO converts a membership to its DTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.CreatedAt,
	}
}

// ToTeamWithRoleDTO converts a membership to a team-with-role DTO
func ToTeamWithRoleDTO(member models.TeamMember) TeamWithRoleDTO {
	return TeamWithRoleDTO{
		TeamDTO: ToTeamDTO(member.Team),
		Role:    member.Role,
	}
}

// ToTeamDetailDTO converts a team with its members to a detailed DTO
func ToTeamDetailDTO(team models.Team, members []models.TeamMember) TeamDetailDTO {
	memberDTOs := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToTeamMemberDTO(member)
	}

	return TeamDetailDTO{
		TeamDTO: ToTeamDTO(team),
		Members: memberDTOs,
	}
}

// ToInvitationDTO converts an invitation to its DTO
func ToInvitationDTO(invitation models.TeamInvitation) InvitationDTO {
	return InvitationDTO{
		Code:      invitation.Code,
		TeamID:    invitation.TeamID,
		ExpiresAt: invitation.ExpiresAt,
	}
}
