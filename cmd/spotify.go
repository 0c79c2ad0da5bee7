package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/danielr460/itunes-spotify-connector/internal/server"
	"github.com/danielr460/itunes-spotify-connector/internal/services"
	"github.com/danielr460/itunes-spotify-connector/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// ensureSession authenticates the Spotify service for this run.
//
// A pre-obtained ACCESS_TOKEN skips the interactive flow; otherwise the full
// OAuth2 authorization-code flow runs against a local callback server. The
// token lives only for the session.
func (r *Runner) ensureSession(ctx context.Context) error {
	if r.config.AccessToken != "" {
		return r.spotify.Authenticate(ctx, map[string]string{"access_token": r.config.AccessToken})
	}

	oauthSrv, ok := r.spotify.(services.OAuthService)
	if !ok {
		return fmt.Errorf("%w: service does not support the OAuth flow", shared.ErrAuthFailed)
	}

	token, err := r.doOAuth(oauthSrv, "authorization")
	if err != nil {
		return err
	}

	return r.spotify.Authenticate(ctx, map[string]string{"access_token": token.AccessToken})
}

// SpotifyAuth runs the OAuth2 flow and prints the obtained token so it can be
// exported as ACCESS_TOKEN for subsequent non-interactive runs.
func (r *Runner) SpotifyAuth(ctx context.Context, cmd *cli.Command) error {
	oauthSrv, ok := r.spotify.(services.OAuthService)
	if !ok {
		return fmt.Errorf("%w: service does not support the OAuth flow", shared.ErrAuthFailed)
	}

	token, err := r.doOAuth(oauthSrv, "authorization")
	if err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("Export the token for non-interactive runs:\n\n")
	r.writePlain("  export ACCESS_TOKEN=%s\n", token.AccessToken)

	return nil
}

// SpotifyProfile authenticates and prints the current user's profile.
func (r *Runner) SpotifyProfile(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(ctx); err != nil {
		return err
	}

	spotify, ok := r.spotify.(*services.SpotifyService)
	if !ok {
		return fmt.Errorf("%w: profile requires the Spotify service", shared.ErrServiceUnavailable)
	}

	profile, err := spotify.UserProfile(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, true)
	}

	r.writePlain("User: %s\n", profile.ID)
	if profile.DisplayName != "" {
		r.writePlain("Display name: %s\n", profile.DisplayName)
	}
	if profile.Product != "" {
		r.writePlain("Product: %s\n", profile.Product)
	}

	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(oauthSrv services.OAuthService, prefix string) (*oauth2.Token, error) {
	state := shared.GenerateID()

	authURL := oauthSrv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(oauthSrv.GetOAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	serverAddr, err := callbackAddr(r.config.RedirectURI)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", prefix, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify %s...\n", prefix)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrAuthFailed)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Err != nil {
		return nil, result.Err
	}

	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}

// callbackAddr derives the local listen address from the configured redirect URI.
func callbackAddr(redirectURI string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("%w: invalid REDIRECT_URI: %v", shared.ErrInvalidConfig, err)
	}

	host := u.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := u.Port()
	if port == "" {
		port = "8080"
	}

	return net.JoinHostPort(host, port), nil
}

// spotifyCommand handles Spotify session operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify session operations",
		Commands: []*cli.Command{
			{
				Name:   "auth",
				Usage:  "Authenticate with Spotify using OAuth2",
				Action: r.SpotifyAuth,
			},
			{
				Name:  "profile",
				Usage: "Show the authenticated user's profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SpotifyProfile,
			},
		},
	}
}
