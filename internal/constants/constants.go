package constants

// Session / context keys
const (
	SessionCookieName = "esports_session"
	ContextKeyUserID  = "user_id"
	SessionOAuthState = "oauth_state"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Invitations
const (
	InvitationCodeLength = 8
	InvitationValidDays  = 7
)

// Logo uploads
const MaxLogoSizeBytes = 2 << 20
