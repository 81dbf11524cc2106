package services

import (
	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/models"
)

// Principal is the resolved identity of the caller.
type Principal struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// CanEditTeam reports whether the caller may change team details.
// Owner only; platform admins get no bypass here.
func CanEditTeam(p Principal, team *models.Team) bool {
	return p.UserID == team.OwnerID
}

// CanDeleteTeam reports whether the caller may delete the team.
func CanDeleteTeam(p Principal, team *models.Team) bool {
	return p.UserID == team.OwnerID
}

// CanUploadLogo reports whether the caller may change the team logo.
func CanUploadLogo(p Principal, team *models.Team) bool {
	return p.UserID == team.OwnerID
}

// CanManageMembers reports whether the caller's membership allows acting
// on the target membership. Owners and captains manage members, but the
// owner row itself is untouchable through this path.
func CanManageMembers(caller, target *models.TeamMember) bool {
	if caller == nil || target == nil {
		return false
	}
	if caller.Role != models.RoleOwner && caller.Role != models.RoleCaptain {
		return false
	}
	return target.Role != models.RoleOwner
}

// CanManageEvent reports whether the caller may edit or delete an event.
// Unlike teams, platform admins may moderate any event.
func CanManageEvent(p Principal, event *models.Event) bool {
	return p.IsAdmin || p.UserID == event.OrganizerID
}
