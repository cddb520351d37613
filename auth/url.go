package auth

import "net/url"

// Google OAuth2 endpoints.
const (
	// AuthEndpoint is the authorization URL users are sent to.
	AuthEndpoint = "https://accounts.google.com/o/oauth2/auth"
	// TokenEndpoint is the token exchange URL.
	TokenEndpoint = "https://oauth2.googleapis.com/token"
)

// BuildAuthURL constructs the authorization URL the user must visit to
// grant the requested scopes. Pure and deterministic: no network call is
// made and the same inputs always produce the same URL.
//
// access_type=offline and prompt=consent are always set so that Google
// issues a refresh token even on repeat authorizations.
func BuildAuthURL(clientID, redirectURI string, scopes []Scope) string {
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", JoinScopes(scopes))
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	return AuthEndpoint + "?" + q.Encode()
}

// BuildAuthURLWithState is BuildAuthURL plus a state parameter for CSRF
// protection during interactive flows.
func BuildAuthURLWithState(clientID, redirectURI string, scopes []Scope, state string) string {
	u := BuildAuthURL(clientID, redirectURI, scopes)
	if state == "" {
		return u
	}
	return u + "&state=" + url.QueryEscape(state)
}
