package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition failures.
var (
	// ErrNoRefreshToken indicates a refresh was attempted without a
	// refresh token available.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrNoToken indicates the client has no token data.
	ErrNoToken = errors.New("no access token available")
)

// ExchangeError is returned when the authorization-code exchange completes
// with a non-success HTTP status.
type ExchangeError struct {
	StatusCode int
	Body       string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("authorization code exchange failed with status %d", e.StatusCode)
}

// RefreshError is returned when the refresh-token exchange completes with a
// non-success HTTP status. A 400/401 here may mean the refresh token was
// revoked or expired, which is indistinguishable from a transient failure
// at this layer; callers deciding whether to re-run the authorization flow
// should treat repeated failures as revocation.
type RefreshError struct {
	StatusCode int
	Body       string
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed with status %d", e.StatusCode)
}

// TransportError wraps a network-level failure (DNS, TLS, timeout) from a
// token-endpoint round trip.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("token endpoint unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
