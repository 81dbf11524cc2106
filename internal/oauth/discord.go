package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

const discordUserURL = "https://discord.com/api/users/@me"

// DiscordUser is the subset of the /users/@me payload this service needs.
type DiscordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

// DisplayName prefers the global display name over the login username.
func (u *DiscordUser) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// AvatarURL builds the CDN URL for the user's avatar, empty if unset.
func (u *DiscordUser) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.ID, u.Avatar)
}

// Provider abstracts the OAuth flow so the auth service can be tested
// without network access.
type Provider interface {
	AuthCodeURL(state string) string
	FetchUser(ctx context.Context, code string) (*DiscordUser, error)
}

// DiscordProvider implements Provider against the Discord OAuth2 API.
type DiscordProvider struct {
	config  *oauth2.Config
	userURL string
}

func NewDiscordProvider(clientID, clientSecret, redirectURL string) *DiscordProvider {
	return &DiscordProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"identify"},
			Endpoint:     discordEndpoint,
		},
		userURL: discordUserURL,
	}
}

// AuthCodeURL returns the provider URL the browser is redirected to.
func (p *DiscordProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// FetchUser exchanges the authorization code and resolves the Discord user.
func (p *DiscordProvider) FetchUser(ctx context.Context, code string) (*DiscordUser, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.userURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discord user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord user endpoint returned status %d", resp.StatusCode)
	}

	var user DiscordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode discord user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("discord user payload missing id")
	}

	return &user, nil
}
