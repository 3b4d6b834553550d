package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"tubevault/internal/server"
	"tubevault/internal/shared"
)

// AuthLogin runs the browser OAuth flow and saves the resulting token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.YouTube
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: credentials.youtube.client_id and client_secret are required for OAuth", shared.ErrMissingConfig)
	}

	state, err := server.GenerateState()
	if err != nil {
		return err
	}

	oauthConf := server.NewGoogleConfig(creds.ClientID, creds.ClientSecret, r.redirectURL())
	authURL := oauthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)

	r.writePlain("Open this URL in your browser to authorize:\n\n%s\n\n", authURL)
	r.writePlain("Waiting for authorization callback on %s...\n", r.callbackAddr())

	r.logger.Info("starting oauth callback server", "addr", r.callbackAddr())
	token, err := server.RunAuthFlow(ctx, oauthConf, r.callbackAddr(), state)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	tokenPath := r.tokenPath()
	if err := server.SaveToken(tokenPath, token); err != nil {
		return err
	}

	r.logger.Info("oauth token saved", "path", tokenPath)
	return r.writePlain("✓ Authorization successful. Token saved to %s\n", tokenPath)
}

// AuthStatus reports whether a saved OAuth token exists and is still valid.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	tokenPath := r.tokenPath()

	token, err := server.LoadToken(tokenPath)
	if err != nil {
		return r.writePlain("Not authenticated. Run 'tubevault auth login' to authorize.\n")
	}

	if err := r.writePlain("Token file: %s\n", tokenPath); err != nil {
		return err
	}

	switch {
	case token.Valid():
		return r.writePlain("Status: valid (expires %s)\n", token.Expiry.Format(time.RFC3339))
	case token.RefreshToken != "":
		return r.writePlain("Status: expired, will refresh automatically on next use\n")
	default:
		return r.writePlain("Status: expired. Run 'tubevault auth login' to re-authorize.\n")
	}
}
