// Package sqlite persists OAuth credentials and token state between runs.
// The token manager itself holds no persistence; this store is the
// collaborator that reconstructs a client after a restart and records
// rotated tokens via a refresh handler.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mantara-io/gworkspace/auth"
	"github.com/mantara-io/gworkspace/internal/logger"
)

// ErrNotFound indicates no credentials exist for the given key.
var ErrNotFound = errors.New("credentials not found")

const schema = `
CREATE TABLE IF NOT EXISTS credentials (
	id            TEXT PRIMARY KEY,
	account       TEXT NOT NULL UNIQUE,
	client_id     TEXT NOT NULL,
	client_secret TEXT NOT NULL,
	redirect_uri  TEXT NOT NULL,
	refresh_token TEXT NOT NULL,
	access_token  TEXT NOT NULL,
	expires_on    TIMESTAMP NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);
`

// Record is one stored account: the application credentials it was
// authorized with and the latest known token data.
type Record struct {
	// ID is the unique identifier (UUID).
	ID string
	// Account is the user identifier, typically the Google email.
	Account string
	// Credentials are the OAuth app credentials used for this account.
	Credentials auth.Credentials
	// Token is the last known token data, including the live refresh
	// token after rotations.
	Token auth.TokenData

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a SQLite-backed credentials store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the store at the specified data directory.
// If dataDir is empty, defaults to ~/.gworkspace/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gworkspace", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "credentials.db")

	// WAL mode for better concurrency between a watcher and the CLI.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores a record. Creates if new, updates if the account exists.
// A missing ID is assigned a fresh UUID.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.Account == "" {
		return fmt.Errorf("save credentials: account is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials
			(id, account, client_id, client_secret, redirect_uri,
			 refresh_token, access_token, expires_on, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account) DO UPDATE SET
			client_id = excluded.client_id,
			client_secret = excluded.client_secret,
			redirect_uri = excluded.redirect_uri,
			refresh_token = excluded.refresh_token,
			access_token = excluded.access_token,
			expires_on = excluded.expires_on,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Account,
		rec.Credentials.ClientID, rec.Credentials.ClientSecret, rec.Credentials.RedirectURI,
		rec.Token.RefreshToken, rec.Token.AccessToken, rec.Token.ExpiresOn.UTC(),
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	return s.getWhere(ctx, "id = ?", id)
}

// GetByAccount retrieves a record by account identifier.
func (s *Store) GetByAccount(ctx context.Context, account string) (*Record, error) {
	return s.getWhere(ctx, "account = ?", account)
}

func (s *Store) getWhere(ctx context.Context, where string, arg any) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, account, client_id, client_secret, redirect_uri,
		       refresh_token, access_token, expires_on, created_at, updated_at
		FROM credentials WHERE `+where, arg)

	var rec Record
	err := row.Scan(
		&rec.ID, &rec.Account,
		&rec.Credentials.ClientID, &rec.Credentials.ClientSecret, &rec.Credentials.RedirectURI,
		&rec.Token.RefreshToken, &rec.Token.AccessToken, &rec.Token.ExpiresOn,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	rec.Credentials.RefreshToken = rec.Token.RefreshToken
	return &rec, nil
}

// List returns all stored records ordered by account.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account, client_id, client_secret, redirect_uri,
		       refresh_token, access_token, expires_on, created_at, updated_at
		FROM credentials ORDER BY account`)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.Account,
			&rec.Credentials.ClientID, &rec.Credentials.ClientSecret, &rec.Credentials.RedirectURI,
			&rec.Token.RefreshToken, &rec.Token.AccessToken, &rec.Token.ExpiresOn,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan credentials: %w", err)
		}
		rec.Credentials.RefreshToken = rec.Token.RefreshToken
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a record by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// RefreshHandler returns a token refresh handler that persists the rotated
// token for the given account. Register it on an auth.Client so refreshed
// tokens survive a restart.
func (s *Store) RefreshHandler(account string) auth.TokenRefreshHandler {
	return auth.TokenRefreshHandlerFunc(func(accessToken, refreshToken string, expiresOn time.Time) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rec, err := s.GetByAccount(ctx, account)
		if err != nil {
			logger.Warn("persist refreshed token: %v", err)
			return
		}
		rec.Token = auth.TokenData{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresOn:    expiresOn,
		}
		if err := s.Save(ctx, *rec); err != nil {
			logger.Warn("persist refreshed token: %v", err)
		}
	})
}
