package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantara-io/gworkspace/auth"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(account string) Record {
	return Record{
		Account: account,
		Credentials: auth.Credentials{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost:8080/callback",
		},
		Token: auth.TokenData{
			AccessToken:  "ya29.token",
			RefreshToken: "1//refresh",
			ExpiresOn:    time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
		},
	}
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("user@example.com")))

	rec, err := store.GetByAccount(ctx, "user@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "user@example.com", rec.Account)
	assert.Equal(t, "client-id", rec.Credentials.ClientID)
	assert.Equal(t, "ya29.token", rec.Token.AccessToken)
	assert.Equal(t, "1//refresh", rec.Token.RefreshToken)
	assert.True(t, rec.Token.ExpiresOn.Equal(time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)))
	// The stored refresh token is mirrored into the credentials seed.
	assert.Equal(t, "1//refresh", rec.Credentials.RefreshToken)
	assert.False(t, rec.CreatedAt.IsZero())

	byID, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Account, byID.Account)
}

func TestSaveUpsertsByAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("user@example.com")))
	first, err := store.GetByAccount(ctx, "user@example.com")
	require.NoError(t, err)

	updated := *first
	updated.Token.AccessToken = "ya29.rotated"
	require.NoError(t, store.Save(ctx, updated))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ya29.rotated", records[0].Token.AccessToken)
}

func TestSaveRequiresAccount(t *testing.T) {
	store := newTestStore(t)
	err := store.Save(context.Background(), Record{})
	assert.Error(t, err)
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetByAccount(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrderedByAccount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("zoe@example.com")))
	require.NoError(t, store.Save(ctx, testRecord("adam@example.com")))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "adam@example.com", records[0].Account)
	assert.Equal(t, "zoe@example.com", records[1].Account)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("user@example.com")))
	rec, err := store.GetByAccount(ctx, "user@example.com")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, rec.ID))
	_, err = store.GetByAccount(ctx, "user@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, rec.ID), ErrNotFound)
}

func TestRefreshHandlerPersistsRotatedToken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("user@example.com")))

	handler := store.RefreshHandler("user@example.com")
	newExpiry := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	handler.OnTokenRefresh("ya29.rotated", "1//refresh", newExpiry)

	rec, err := store.GetByAccount(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ya29.rotated", rec.Token.AccessToken)
	assert.Equal(t, "1//refresh", rec.Token.RefreshToken)
	assert.True(t, rec.Token.ExpiresOn.Equal(newExpiry))
}

func TestRefreshHandlerUnknownAccountIsNoOp(t *testing.T) {
	store := newTestStore(t)

	// Must not panic or create a record.
	store.RefreshHandler("ghost@example.com").
		OnTokenRefresh("t", "r", time.Now())

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
