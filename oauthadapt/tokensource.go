// Package oauthadapt bridges the token manager to the golang.org/x/oauth2
// ecosystem, so third-party clients that expect an oauth2.TokenSource can
// ride on the manager's refresh logic.
package oauthadapt

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/mantara-io/gworkspace/auth"
)

// TokenSourceAdapter adapts an auth.Client to oauth2.TokenSource.
type TokenSourceAdapter struct {
	mgr *auth.Client
	ctx context.Context
}

// NewTokenSource creates an oauth2.TokenSource backed by the given client.
// Each Token call runs the manager's refresh check first, so the returned
// token is always the manager's current one.
func NewTokenSource(ctx context.Context, mgr *auth.Client) oauth2.TokenSource {
	return &TokenSourceAdapter{
		mgr: mgr,
		ctx: ctx,
	}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	if err := t.mgr.CheckRefresh(t.ctx); err != nil {
		return nil, err
	}

	tok := t.mgr.Token()
	return &oauth2.Token{
		AccessToken: tok.AccessToken,
		TokenType:   "Bearer",
		Expiry:      tok.ExpiresOn,
	}, nil
}
