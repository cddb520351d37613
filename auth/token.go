package auth

import (
	"encoding/json"
	"time"
)

// AccessToken is the wire response from the OAuth2 token endpoint. It is
// transient: callers convert it into TokenData (absolute expiry) as soon as
// it is received and never consult expires_in again.
//
// Google omits optional fields on some grants (refresh responses carry no
// refresh_token), so every field decodes leniently: missing or null values
// become zero values rather than errors.
type AccessToken struct {
	TokenType             string `json:"token_type"`
	Token                 string `json:"access_token"`
	ExpiresIn             int64  `json:"expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
	Scope                 string `json:"scope"`
}

// UnmarshalJSON accepts both the documented refresh_token_expires_in field
// and the x_refresh_token_expires_in alias some responses use.
func (t *AccessToken) UnmarshalJSON(data []byte) error {
	type plain AccessToken
	aux := struct {
		*plain
		Alias int64 `json:"x_refresh_token_expires_in"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.RefreshTokenExpiresIn == 0 && aux.Alias != 0 {
		t.RefreshTokenExpiresIn = aux.Alias
	}
	return nil
}

// TokenData is the client's internal token state derived from an
// AccessToken: the bearer string, the absolute UTC expiry instant, and the
// refresh token. It is replaced wholesale on every refresh, never patched.
type TokenData struct {
	AccessToken  string    `json:"access_token"`
	ExpiresOn    time.Time `json:"expires_on"`
	RefreshToken string    `json:"refresh_token"`
}

// NewTokenData converts a token-endpoint response into internal state.
// The expiry is computed exactly once as issuedAt + expires_in; the
// provider's clock may differ slightly from ours, which is an accepted
// source of rare, small staleness.
func NewTokenData(tok AccessToken, issuedAt time.Time) TokenData {
	return TokenData{
		AccessToken:  tok.Token,
		ExpiresOn:    issuedAt.UTC().Add(time.Duration(tok.ExpiresIn) * time.Second),
		RefreshToken: tok.RefreshToken,
	}
}

// Credentials holds the OAuth application configuration: client id, client
// secret, redirect URI and the refresh token obtained from the initial
// authorization-code exchange.
//
// The client id, secret and redirect URI are immutable for a Client's
// lifetime. The refresh token here is a one-time seed: after construction
// the live value is tracked in the Client's TokenData, and persisting
// rotation is the caller's responsibility (see store/sqlite).
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	RefreshToken string `json:"refresh_token"`
}
