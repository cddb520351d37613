package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mantara-io/gworkspace/auth"
	"github.com/mantara-io/gworkspace/config"
	"github.com/mantara-io/gworkspace/store/sqlite"
)

func openConfig() (*config.Store, error) {
	return config.NewStore(configDir)
}

func openData() (*sqlite.Store, error) {
	return sqlite.NewStore(dataDir)
}

// loadRecord resolves the stored credentials to act as. An explicit
// account wins; with a single stored account the flag may be omitted.
func loadRecord(ctx context.Context, store *sqlite.Store, account string) (*sqlite.Record, error) {
	if account != "" {
		rec, err := store.GetByAccount(ctx, account)
		if errors.Is(err, sqlite.ErrNotFound) {
			return nil, fmt.Errorf("no stored credentials for %s, run 'gworkspace auth login' first", account)
		}
		return rec, err
	}

	records, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	switch len(records) {
	case 0:
		return nil, errors.New("no stored credentials, run 'gworkspace auth login' first")
	case 1:
		return &records[0], nil
	default:
		return nil, errors.New("multiple accounts stored, pick one with --account")
	}
}

// clientForRecord restores a token manager from a stored record and wires
// the store in as a refresh handler, so rotated tokens are persisted.
func clientForRecord(store *sqlite.Store, rec *sqlite.Record) *auth.Client {
	mgr := auth.NewClientFromData(rec.Credentials, rec.Token, true)
	mgr.OnTokenRefresh(store.RefreshHandler(rec.Account))
	return mgr
}
