package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mantara-io/gworkspace/internal/logger"
)

// exchangeClient is used for token-endpoint round trips. These calls are
// form-encoded and unauthenticated, so they do not go through the bearer
// client the resource builders use.
var exchangeClient = &http.Client{Timeout: 30 * time.Second}

// ExchangeCode exchanges an authorization code for an access and refresh
// token, using the default Google token endpoint.
//
// The code is normally read from the redirect callback's query parameter
// and may be empty if the parameter was missing; that surfaces as an
// *ExchangeError from the provider, never a panic.
func ExchangeCode(ctx context.Context, code, clientID, clientSecret, redirectURI string) (*AccessToken, error) {
	return ExchangeCodeAt(ctx, TokenEndpoint, code, clientID, clientSecret, redirectURI)
}

// ExchangeCodeAt is ExchangeCode against an explicit token URL.
func ExchangeCodeAt(ctx context.Context, tokenURL, code, clientID, clientSecret, redirectURI string) (*AccessToken, error) {
	data := url.Values{}
	data.Set("code", code)
	data.Set("client_id", clientID)
	data.Set("client_secret", clientSecret)
	data.Set("redirect_uri", redirectURI)
	data.Set("grant_type", "authorization_code")

	body, status, err := postForm(ctx, tokenURL, data)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &ExchangeError{StatusCode: status, Body: string(body)}
	}

	tok := decodeAccessTokenLenient(body)
	logger.Debug("code exchange succeeded, token expires in %ds", tok.ExpiresIn)
	return tok, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token,
// using the default Google token endpoint. Google never returns a new
// refresh token on this grant; callers must retain the original.
func RefreshAccessToken(ctx context.Context, creds Credentials, refreshToken string) (*AccessToken, error) {
	return RefreshAccessTokenAt(ctx, TokenEndpoint, creds, refreshToken)
}

// RefreshAccessTokenAt is RefreshAccessToken against an explicit token URL.
// If refreshToken is empty, the seed token from creds is used.
func RefreshAccessTokenAt(ctx context.Context, tokenURL string, creds Credentials, refreshToken string) (*AccessToken, error) {
	if refreshToken == "" {
		refreshToken = creds.RefreshToken
	}
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	data := url.Values{}
	data.Set("client_id", creds.ClientID)
	data.Set("client_secret", creds.ClientSecret)
	data.Set("refresh_token", refreshToken)
	data.Set("grant_type", "refresh_token")

	body, status, err := postForm(ctx, tokenURL, data)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &RefreshError{StatusCode: status, Body: string(body)}
	}

	var tok AccessToken
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	logger.Debug("token refresh succeeded, new token expires in %ds", tok.ExpiresIn)
	return &tok, nil
}

// postForm performs one form-encoded POST and returns the body and status.
// The returned error covers transport-level failures only.
func postForm(ctx context.Context, tokenURL string, data url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := exchangeClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// decodeAccessTokenLenient parses a token response, falling back to
// field-by-field extraction with zero defaults when the body does not
// decode as a whole. Providers sometimes omit optional fields; a partial
// token is more useful to the caller than a decode error.
func decodeAccessTokenLenient(body []byte) *AccessToken {
	var tok AccessToken
	if err := json.Unmarshal(body, &tok); err == nil {
		return &tok
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return &AccessToken{}
	}

	// Documented key first, alias second, same as UnmarshalJSON.
	refreshExpiry := rawInt64(raw, "refresh_token_expires_in")
	if refreshExpiry == 0 {
		refreshExpiry = rawInt64(raw, "x_refresh_token_expires_in")
	}

	return &AccessToken{
		TokenType:             rawString(raw, "token_type"),
		Token:                 rawString(raw, "access_token"),
		ExpiresIn:             rawInt64(raw, "expires_in"),
		RefreshToken:          rawString(raw, "refresh_token"),
		RefreshTokenExpiresIn: refreshExpiry,
		Scope:                 rawString(raw, "scope"),
	}
}

func rawString(raw map[string]json.RawMessage, key string) string {
	var s string
	if v, ok := raw[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

func rawInt64(raw map[string]json.RawMessage, key string) int64 {
	var n int64
	if v, ok := raw[key]; ok {
		_ = json.Unmarshal(v, &n)
	}
	return n
}
