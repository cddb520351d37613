// Package config loads the OAuth application configuration from a TOML
// file. Client id and secret are never hard-coded; they always come from
// this file (or the caller's own store).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file name inside the config directory.
const DefaultFileName = "config.toml"

// ErrMissingClientID indicates the config file has no client_id.
var ErrMissingClientID = errors.New("config: client_id is required")

// App holds the OAuth application settings read from the config file.
type App struct {
	// ClientID is the OAuth client id from the Google Cloud console.
	ClientID string `toml:"client_id"`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `toml:"client_secret"`
	// RedirectURI is where the provider sends the authorization code.
	// Defaults to the loopback callback if empty.
	RedirectURI string `toml:"redirect_uri"`
	// Scopes are the canonical permission strings to request.
	Scopes []string `toml:"scopes"`
}

// Store is a file-backed configuration store.
type Store struct {
	mu       sync.RWMutex
	filePath string
	app      App
}

// NewStore creates a config store rooted at configDir. If configDir is
// empty, defaults to ~/.gworkspace. The directory is created if missing;
// an absent config file is not an error, it reads as zero values.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".gworkspace")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{filePath: filepath.Join(configDir, DefaultFileName)}
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Load reads the config file from disk, replacing in-memory state.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var app App
	if err := toml.Unmarshal(data, &app); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	s.app = app
	return nil
}

// Save writes the current in-memory state to disk. The file is written
// with owner-only permissions since it holds the client secret.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := toml.Marshal(s.app)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// App returns a copy of the current application settings.
func (s *Store) App() App {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.app
}

// SetApp replaces the application settings in memory. Call Save to persist.
func (s *Store) SetApp(app App) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app = app
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.filePath
}

// Validate checks that the settings are usable for an authorization flow.
func (a App) Validate() error {
	if a.ClientID == "" {
		return ErrMissingClientID
	}
	return nil
}
