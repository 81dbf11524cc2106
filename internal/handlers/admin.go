package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shirokane/esports-hub-api/internal/dto"
	apierrors "github.com/shirokane/esports-hub-api/internal/errors"
	"github.com/shirokane/esports-hub-api/internal/middleware"
	"github.com/shirokane/esports-hub-api/internal/services"
	"github.com/shirokane/esports-hub-api/internal/utils"
)

// AdminHandler exposes the platform moderation endpoints. Routes are
// additionally gated by the RequireAdmin middleware.
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListUsers returns users for moderation.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(principal, params)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// SetUserAdmin grants or revokes the platform admin flag.
func (h *AdminHandler) SetUserAdmin(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	type SetAdminRequest struct {
		IsAdmin *bool `json:"is_admin" binding:"required"`
	}

	var req SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.adminService.SetUserAdmin(principal, targetID, *req.IsAdmin)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListTeams returns all teams for moderation.
func (h *AdminHandler) ListTeams(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teams, err := h.adminService.ListTeams(principal)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": dto.ToTeamDTOs(teams),
	})
}

// ListEvents returns all events for moderation.
func (h *AdminHandler) ListEvents(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	events, total, err := h.adminService.ListEvents(principal, params)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": dto.ToEventDTOs(events),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotPlatformAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCannotChangeOwnAdminStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
