package storage

import (
	"testing"

	"github.com/shirokane/esports-hub-api/internal/config"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MinioLogoStore {
	t.Helper()

	store, err := NewMinioLogoStore(&config.Config{
		MinioEndpoint:  "localhost:9000",
		MinioAccessKey: "test",
		MinioSecretKey: "test",
		MinioBucket:    "team-logos",
	})
	require.NoError(t, err)
	return store
}

func TestMinioLogoStore_ObjectNameFromURL(t *testing.T) {
	store := newTestStore(t)

	name := store.ObjectNameFromURL("http://localhost:9000/team-logos/team-logos/abc-123.png")
	require.Equal(t, "team-logos/abc-123.png", name)
}

func TestMinioLogoStore_ObjectNameFromURL_ForeignURL(t *testing.T) {
	store := newTestStore(t)

	require.Empty(t, store.ObjectNameFromURL("http://cdn.example.com/other/abc.png"))
	require.Empty(t, store.ObjectNameFromURL("://not-a-url"))
}
