package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mantara-io/gworkspace/auth"
	"github.com/mantara-io/gworkspace/authflow"
	"github.com/mantara-io/gworkspace/config"
	"github.com/mantara-io/gworkspace/internal/logger"
	"github.com/mantara-io/gworkspace/store/sqlite"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google account authorization",
	Long: `Authorize a Google account and manage stored credentials.

'auth login' runs the browser authorization flow, exchanges the returned
code for tokens, and stores them. Later commands refresh the access token
automatically; login is needed again only if the refresh token is revoked.

Examples:
  # Authorize with client credentials from the config file
  gworkspace auth login --account you@example.com

  # Authorize non-interactively
  gworkspace auth login --account you@example.com \
    --client-id "xxx" --client-secret "yyy"

  # Show stored accounts and token state
  gworkspace auth status

  # Forget an account
  gworkspace auth logout you@example.com`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize a Google account via the browser",
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored accounts and token validity",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout [account]",
	Short: "Remove a stored account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthLogout,
}

// Flags for auth login.
var (
	loginAccount      string
	loginClientID     string
	loginClientSecret string
	loginScopes       string
	loginNoBrowser    bool
)

func init() {
	authLoginCmd.Flags().StringVar(
		&loginAccount, "account", "", "Account identifier to store the credentials under")
	authLoginCmd.Flags().StringVar(
		&loginClientID, "client-id", "", "OAuth client ID (overrides config file)")
	authLoginCmd.Flags().StringVar(
		&loginClientSecret, "client-secret", "", "OAuth client secret (overrides config file)")
	authLoginCmd.Flags().StringVar(
		&loginScopes, "scopes", "", "Scopes to request (comma-separated, uses defaults if not provided)")
	authLoginCmd.Flags().BoolVar(
		&loginNoBrowser, "no-browser", false, "Print the authorization URL instead of opening a browser")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

// defaultScopes cover the three services the tool talks to.
var defaultScopes = []auth.Scope{
	auth.ScopeCalendarEvents,
	auth.ScopeMailModify,
	auth.ScopeTasks,
}

//nolint:gocognit // CLI interactive flow
func runAuthLogin(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	cfgStore, err := openConfig()
	if err != nil {
		return err
	}
	app := cfgStore.App()

	clientID := loginClientID
	if clientID == "" {
		clientID = app.ClientID
	}
	if clientID == "" {
		cmd.Print("Client ID: ")
		input, _ := reader.ReadString('\n')
		clientID = strings.TrimSpace(input)
	}
	if clientID == "" {
		return config.ErrMissingClientID
	}

	clientSecret := loginClientSecret
	if clientSecret == "" {
		clientSecret = app.ClientSecret
	}
	if clientSecret == "" {
		cmd.Print("Client Secret: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return fmt.Errorf("read client secret: %w", err)
		}
		clientSecret = strings.TrimSpace(string(secret))
	}
	if clientSecret == "" {
		return errors.New("client secret is required")
	}

	account := loginAccount
	if account == "" {
		cmd.Print("Account (your Google email): ")
		input, _ := reader.ReadString('\n')
		account = strings.TrimSpace(input)
	}
	if account == "" {
		return errors.New("account is required")
	}

	scopes := parseScopes(loginScopes, app.Scopes)

	logger.Section("OAuth authorization")

	// Loopback callback server on an ephemeral port unless the config
	// pins a redirect URI. The server picks the CSRF state for this flow.
	srv := authflow.NewCallbackServer(0, "")
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}
	defer srv.Stop()

	redirectURI := app.RedirectURI
	if redirectURI == "" {
		redirectURI = srv.RedirectURI()
	}

	authURL := auth.BuildAuthURLWithState(clientID, redirectURI, scopes, srv.State())
	if loginNoBrowser {
		cmd.Printf("Open this URL in your browser:\n\n  %s\n\n", authURL)
	} else if err := authflow.OpenBrowser(authURL); err != nil {
		cmd.Printf("Could not open a browser (%v).\nOpen this URL manually:\n\n  %s\n\n", err, authURL)
	}

	cmd.Println("Waiting for authorization...")
	code, err := srv.WaitForCode(5 * time.Minute)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	token, err := auth.ExchangeCode(ctx, code, clientID, clientSecret, redirectURI)
	if err != nil {
		return fmt.Errorf("code exchange failed: %w", err)
	}
	if token.RefreshToken == "" {
		return errors.New("provider returned no refresh token, revoke access and retry")
	}

	creds := auth.Credentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		RefreshToken: token.RefreshToken,
	}
	mgr := auth.NewClient(creds, *token, true)

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	rec := sqlite.Record{
		Account:     account,
		Credentials: creds,
		Token:       mgr.Token(),
	}
	if err := store.Save(ctx, rec); err != nil {
		return err
	}

	cmd.Printf("Authorized %s. Token expires %s.\n",
		account, mgr.Token().ExpiresOn.Local().Format(time.RFC3339))
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No stored accounts.")
		cmd.Println("Add one with: gworkspace auth login")
		return nil
	}

	cmd.Println("Stored accounts:")
	cmd.Println()
	now := time.Now()
	for i := range records {
		state := "expired"
		if now.Before(records[i].Token.ExpiresOn) {
			state = "valid"
		}
		cmd.Printf("  %s\n", records[i].Account)
		cmd.Printf("    Client ID: %s...\n", truncate(records[i].Credentials.ClientID, 20))
		cmd.Printf("    Access token: %s (expires %s)\n",
			state, records[i].Token.ExpiresOn.Local().Format(time.RFC3339))
		cmd.Printf("    Authorized: %s\n", records[i].CreatedAt.Local().Format(time.RFC3339))
		cmd.Println()
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	account := args[0]

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetByAccount(ctx, account)
	if err != nil {
		return fmt.Errorf("account not found: %w", err)
	}
	if err := store.Delete(ctx, rec.ID); err != nil {
		return err
	}

	cmd.Printf("Removed account: %s\n", account)
	return nil
}

// parseScopes resolves the requested scopes: the flag wins, then the
// config file, then the defaults.
func parseScopes(flagValue string, configured []string) []auth.Scope {
	raw := configured
	if flagValue != "" {
		raw = strings.Split(flagValue, ",")
	}
	if len(raw) == 0 {
		return defaultScopes
	}
	scopes := make([]auth.Scope, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, auth.Scope(s))
		}
	}
	if len(scopes) == 0 {
		return defaultScopes
	}
	return scopes
}

// truncate truncates a string to the specified length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
