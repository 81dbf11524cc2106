package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestDiscordUser_DisplayName(t *testing.T) {
	user := &DiscordUser{Username: "gamer", GlobalName: "Gamer"}
	require.Equal(t, "Gamer", user.DisplayName())

	user.GlobalName = ""
	require.Equal(t, "gamer", user.DisplayName())
}

func TestDiscordUser_AvatarURL(t *testing.T) {
	user := &DiscordUser{ID: "42", Avatar: "abcd"}
	require.Equal(t, "https://cdn.discordapp.com/avatars/42/abcd.png", user.AvatarURL())

	user.Avatar = ""
	require.Empty(t, user.AvatarURL())
}

func TestDiscordProvider_AuthCodeURL(t *testing.T) {
	provider := NewDiscordProvider("client-id", "secret", "http://localhost:8080/api/auth/callback")

	u := provider.AuthCodeURL("state123")
	require.True(t, strings.HasPrefix(u, discordEndpoint.AuthURL))
	require.Contains(t, u, "state=state123")
	require.Contains(t, u, "client_id=client-id")
	require.Contains(t, u, "scope=identify")
}

func TestDiscordProvider_FetchUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token123",
			"token_type":   "Bearer",
		})
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(DiscordUser{
			ID:         "42",
			Username:   "gamer",
			GlobalName: "Gamer",
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	provider := NewDiscordProvider("client-id", "secret", "http://localhost:8080/api/auth/callback")
	provider.config.Endpoint = oauth2.Endpoint{TokenURL: server.URL + "/token"}
	provider.userURL = server.URL + "/users/@me"

	user, err := provider.FetchUser(context.Background(), "authcode")
	require.NoError(t, err)
	require.Equal(t, "42", user.ID)
	require.Equal(t, "Gamer", user.DisplayName())
}

func TestDiscordProvider_FetchUser_MissingID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token123",
			"token_type":   "Bearer",
		})
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	provider := NewDiscordProvider("client-id", "secret", "http://localhost:8080/api/auth/callback")
	provider.config.Endpoint = oauth2.Endpoint{TokenURL: server.URL + "/token"}
	provider.userURL = server.URL + "/users/@me"

	_, err := provider.FetchUser(context.Background(), "authcode")
	require.Error(t, err)
}
