package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	store.SetApp(App{
		ClientID:     "client-123",
		ClientSecret: "secret-456",
		RedirectURI:  "http://localhost:9999/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/tasks",
			"https://www.googleapis.com/auth/gmail.readonly",
		},
	})
	require.NoError(t, store.Save())

	// A fresh store sees the persisted settings.
	reloaded, err := NewStore(dir)
	require.NoError(t, err)

	app := reloaded.App()
	assert.Equal(t, "client-123", app.ClientID)
	assert.Equal(t, "secret-456", app.ClientSecret)
	assert.Equal(t, "http://localhost:9999/callback", app.RedirectURI)
	assert.Len(t, app.Scopes, 2)
}

func TestStoreMissingFileIsNotAnError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, App{}, store.App())
}

func TestStoreFilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	store.SetApp(App{ClientID: "id", ClientSecret: "secret"})
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	// The file holds the client secret: owner-only access.
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStoreLoadRejectsInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("this is { not toml"), 0600))

	_, err := NewStore(dir)
	assert.Error(t, err)
}

func TestAppValidate(t *testing.T) {
	assert.ErrorIs(t, App{}.Validate(), ErrMissingClientID)
	assert.NoError(t, App{ClientID: "id"}.Validate())
}

func TestStorePath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), store.Path())
}
