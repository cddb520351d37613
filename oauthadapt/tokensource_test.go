package oauthadapt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantara-io/gworkspace/auth"
)

func TestTokenSourceReturnsCurrentToken(t *testing.T) {
	mgr := auth.NewClient(auth.Credentials{ClientID: "id"},
		auth.AccessToken{Token: "ya29.current", ExpiresIn: 3600, RefreshToken: "r"}, false)

	ts := NewTokenSource(context.Background(), mgr)
	tok, err := ts.Token()
	require.NoError(t, err)

	assert.Equal(t, "ya29.current", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, mgr.Token().ExpiresOn, tok.Expiry)
	assert.True(t, tok.Valid())
}

func TestTokenSourceRefreshesExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type": "Bearer", "access_token": "ya29.fresh", "expires_in": 3600}`))
	}))
	defer srv.Close()

	mgr := auth.NewClient(auth.Credentials{ClientID: "id", ClientSecret: "s"},
		auth.AccessToken{Token: "ya29.stale", ExpiresIn: -1, RefreshToken: "1//r"},
		true, auth.WithTokenURL(srv.URL))

	ts := NewTokenSource(context.Background(), mgr)
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.fresh", tok.AccessToken)
}

func TestTokenSourceSurfacesRefreshFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	mgr := auth.NewClient(auth.Credentials{ClientID: "id"},
		auth.AccessToken{Token: "stale", ExpiresIn: -1, RefreshToken: "1//revoked"},
		true, auth.WithTokenURL(srv.URL))

	ts := NewTokenSource(context.Background(), mgr)
	tok, err := ts.Token()
	assert.Nil(t, tok)

	var refreshErr *auth.RefreshError
	assert.ErrorAs(t, err, &refreshErr)
}
