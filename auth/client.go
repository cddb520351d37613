// Package auth implements the OAuth2 token lifecycle for Google Workspace
// APIs: scope catalog, authorization URL construction, the two token
// endpoint exchanges, and a Client that owns the current access token and
// refreshes it lazily at point of use.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/mantara-io/gworkspace/internal/logger"
	"github.com/mantara-io/gworkspace/transport"
)

// TokenRefreshHandler receives the new token triple after every successful
// refresh. Handlers are invoked synchronously, in registration order, only
// on success. They never fire on construction or on failed refresh attempts.
//
// Handlers must not call back into the Client.
type TokenRefreshHandler interface {
	OnTokenRefresh(accessToken, refreshToken string, expiresOn time.Time)
}

// TokenRefreshHandlerFunc adapts a bare function to TokenRefreshHandler.
type TokenRefreshHandlerFunc func(accessToken, refreshToken string, expiresOn time.Time)

// OnTokenRefresh implements TokenRefreshHandler.
func (f TokenRefreshHandlerFunc) OnTokenRefresh(accessToken, refreshToken string, expiresOn time.Time) {
	f(accessToken, refreshToken, expiresOn)
}

// Client manages the access-token lifecycle for one Google account. It
// holds the application credentials, the current token data, an HTTP
// client preconfigured with the bearer header, and the refresh handlers.
//
// The client refreshes reactively: there is no background timer. Resource
// builders call CheckRefresh immediately before every authenticated
// request, so a stale token is never observable at the call site. The
// first request after expiry pays the refresh latency; idle clients cost
// nothing.
//
// A mutex serialises refresh against concurrent readers, but the client is
// designed for one logical owner; embed one client per session or tenant.
type Client struct {
	mu          sync.Mutex
	creds       Credentials
	token       *TokenData
	httpClient  *http.Client
	autoRefresh bool
	handlers    []TokenRefreshHandler
	tokenURL    string
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithTokenURL overrides the token endpoint. Used in tests against a fake
// provider.
func WithTokenURL(u string) Option {
	return func(c *Client) { c.tokenURL = u }
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient constructs a Client from the application credentials and an
// initial token obtained via ExchangeCode. The token's absolute expiry is
// computed here, once, from the construction instant.
func NewClient(creds Credentials, token AccessToken, autoRefresh bool, opts ...Option) *Client {
	c := &Client{
		creds:       creds,
		autoRefresh: autoRefresh,
		tokenURL:    TokenEndpoint,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	data := NewTokenData(token, c.now())
	if data.RefreshToken == "" {
		data.RefreshToken = creds.RefreshToken
	}
	c.token = &data
	c.httpClient = transport.NewBearerClient(data.AccessToken)
	return c
}

// NewClientFromData restores a Client from previously persisted token
// data. The absolute expiry is taken as stored, not recomputed; a client
// restored after the expiry instant simply refreshes on first use.
func NewClientFromData(creds Credentials, data TokenData, autoRefresh bool, opts ...Option) *Client {
	c := &Client{
		creds:       creds,
		autoRefresh: autoRefresh,
		tokenURL:    TokenEndpoint,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if data.RefreshToken == "" {
		data.RefreshToken = creds.RefreshToken
	}
	c.token = &data
	c.httpClient = transport.NewBearerClient(data.AccessToken)
	return c
}

// IsTokenValid reports whether the current access token's absolute expiry
// is still in the future. Pure check; no mutation, no network.
func (c *Client) IsTokenValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *Client) validLocked() bool {
	if c.token == nil {
		return false
	}
	return c.now().Before(c.token.ExpiresOn)
}

// CheckRefresh refreshes the access token if auto-refresh is enabled and
// the token has expired; otherwise it is a no-op. On success the token
// data is replaced, the HTTP client is rebuilt with the new bearer header,
// and every registered handler is notified before returning. On failure
// the client keeps its previous (stale) token data and the error
// propagates: the caller must decide whether to retry or re-run the
// authorization-code flow.
func (c *Client) CheckRefresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.autoRefresh || c.validLocked() {
		c.mu.Unlock()
		return nil
	}

	if c.token == nil {
		c.mu.Unlock()
		return ErrNoToken
	}

	logger.Debug("access token expired, refreshing")

	// The token-endpoint call happens under the lock: concurrent expired
	// callers serialise, and the second one finds a valid token.
	tok, err := RefreshAccessTokenAt(ctx, c.tokenURL, c.creds, c.token.RefreshToken)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("refresh access token: %w", err)
	}

	data := NewTokenData(*tok, c.now())
	// The refresh grant never returns a new refresh token; keep the one
	// we have.
	if data.RefreshToken == "" {
		data.RefreshToken = c.token.RefreshToken
	}
	c.token = &data
	c.httpClient = transport.NewBearerClient(data.AccessToken)

	handlers := slices.Clone(c.handlers)
	accessToken, refreshToken, expiresOn := data.AccessToken, data.RefreshToken, data.ExpiresOn
	c.mu.Unlock()

	for _, h := range handlers {
		h.OnTokenRefresh(accessToken, refreshToken, expiresOn)
	}
	return nil
}

// EnableAutoRefresh turns on lazy refresh. No effect on the current token.
func (c *Client) EnableAutoRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoRefresh = true
}

// DisableAutoRefresh turns off lazy refresh. CheckRefresh becomes a no-op
// and requests proceed with whatever token is held, stale or not.
func (c *Client) DisableAutoRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoRefresh = false
}

// OnTokenRefresh registers a handler for successful refreshes. Additive
// only; there is no removal.
func (c *Client) OnTokenRefresh(h TokenRefreshHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
}

// OnTokenRefreshFunc registers a bare function as a refresh handler.
func (c *Client) OnTokenRefreshFunc(f func(accessToken, refreshToken string, expiresOn time.Time)) {
	c.OnTokenRefresh(TokenRefreshHandlerFunc(f))
}

// HTTPClient returns the client preconfigured with the current bearer
// header. Call CheckRefresh first; the returned client is not replaced
// retroactively in callers' hands after a refresh.
func (c *Client) HTTPClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.httpClient
}

// Token returns a copy of the current token data.
func (c *Client) Token() TokenData {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == nil {
		return TokenData{}
	}
	return *c.token
}

// Credentials returns a copy of the application credentials the client was
// constructed with.
func (c *Client) Credentials() Credentials {
	return c.creds
}

// String renders the client state with secrets redacted.
func (c *Client) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	expiry := "none"
	if c.token != nil {
		expiry = c.token.ExpiresOn.Format(time.RFC3339)
	}
	return fmt.Sprintf("auth.Client{client_id: %s, client_secret: [REDACTED], refresh_token: [REDACTED], token_expiry: %s, handlers: %d}",
		c.creds.ClientID, expiry, len(c.handlers))
}
