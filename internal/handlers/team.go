package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shirokane/esports-hub-api/internal/constants"
	"github.com/shirokane/esports-hub-api/internal/dto"
	apierrors "github.com/shirokane/esports-hub-api/internal/errors"
	"github.com/shirokane/esports-hub-api/internal/middleware"
	"github.com/shirokane/esports-hub-api/internal/models"
	"github.com/shirokane/esports-hub-api/internal/services"
)

// TeamHandler exposes the team, membership, and invitation endpoints.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListTeams returns all teams, newest first. Public.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": dto.ToTeamDTOs(teams),
	})
}

// GetTeam returns a team and its members. Public.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	team, members, err := h.teamService.GetTeamWithMembers(teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDetailDTO(*team, members))
}

// ListMyTeams returns the caller's teams with their role in each.
func (h *TeamHandler) ListMyTeams(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.teamService.ListTeamsForUser(userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	teams := make([]dto.TeamWithRoleDTO, len(memberships))
	for i, m := range memberships {
		teams[i] = dto.ToTeamWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": teams,
	})
}

// CreateTeam creates a team owned by the caller.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTeamRequest struct {
		Name        string `json:"name" binding:"required,max=255"`
		Description string `json:"description"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(services.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// UpdateTeam updates team details. Owner only.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTeamRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.UpdateTeam(principal, teamID, services.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// DeleteTeam deletes a team and everything keyed to it. Owner only.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), principal, teamID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted successfully",
	})
}

// UploadLogo replaces the team logo. Owner only.
func (h *TeamHandler) UploadLogo(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		apierrors.BadRequest(c, "Missing logo file")
		return
	}
	if file.Size > constants.MaxLogoSizeBytes {
		apierrors.BadRequest(c, "Logo file is too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		apierrors.BadRequest(c, "Unreadable logo file")
		return
	}
	defer src.Close()

	team, err := h.teamService.UpdateLogo(
		c.Request.Context(),
		principal,
		teamID,
		file.Filename,
		file.Header.Get("Content-Type"),
		src,
		file.Size,
	)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// CreateInvitation issues a join code. Owner or captain only.
func (h *TeamHandler) CreateInvitation(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	invitation, err := h.teamService.IssueInvitation(principal, teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*invitation))
}

// JoinTeam redeems an invitation code for the caller.
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		Code string `json:"code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.JoinByInvitation(userID, req.Code)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully joined team",
		"team":    dto.ToTeamDTO(*team),
	})
}

// UpdateMemberRole promotes or demotes a member. Owner only.
func (h *TeamHandler) UpdateMemberRole(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	type UpdateRoleRequest struct {
		Role models.TeamRole `json:"role" binding:"required"`
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.teamService.ChangeMemberRole(principal, teamID, targetID, req.Role)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team_id": member.TeamID,
		"user_id": member.UserID,
		"role":    member.Role,
	})
}

// RemoveMember removes a member from the team. Owner or captain only.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(principal, teamID, targetID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrTeamMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotTeamOwner),
		errors.Is(err, services.ErrNotTeamAdmin),
		errors.Is(err, services.ErrCannotManageOwner),
		errors.Is(err, services.ErrCannotRemoveYourself):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidInvitation):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvitationExpired):
		apierrors.Gone(c, err.Error())
	case errors.Is(err, services.ErrInvitationAlreadyUsed),
		errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrLogoStorageUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
