package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shirokane/esports-hub-api/internal/constants"
	"github.com/shirokane/esports-hub-api/internal/dto"
	apierrors "github.com/shirokane/esports-hub-api/internal/errors"
	"github.com/shirokane/esports-hub-api/internal/middleware"
	"github.com/shirokane/esports-hub-api/internal/services"
)

// AuthHandler coordinates the Discord sign-in flow and profile endpoints.
type AuthHandler struct {
	authService *services.AuthService
	appURL      string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, appURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		appURL:      appURL,
	}
}

// SignIn redirects the browser to the Discord authorization page.
func (h *AuthHandler) SignIn(c *gin.Context) {
	state := uuid.NewString()

	session := sessions.Default(c)
	session.Set(constants.SessionOAuthState, state)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.authService.SignInURL(state))
}

// Callback completes the OAuth flow and initializes the session.
func (h *AuthHandler) Callback(c *gin.Context) {
	session := sessions.Default(c)

	expectedState, _ := session.Get(constants.SessionOAuthState).(string)
	session.Delete(constants.SessionOAuthState)

	if expectedState == "" || c.Query("state") != expectedState {
		apierrors.BadRequest(c, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing authorization code")
		return
	}

	user, err := h.authService.HandleCallback(c.Request.Context(), code)
	if err != nil {
		apierrors.ServiceUnavailable(c, "Sign-in with Discord failed")
		return
	}

	session.Set(constants.ContextKeyUserID, user.ID.String())
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.appURL)
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateProfile updates the caller's own profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		Username *string `json:"username"`
		Bio      *string `json:"bio"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(userID, services.UpdateProfileInput{
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
