package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"tubevault/internal/library"
	"tubevault/internal/models"
	"tubevault/internal/repositories"
	"tubevault/internal/server"
	"tubevault/internal/services"
	"tubevault/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database and library engine are opened lazily on first use so commands
// like setup and auth work before the library exists.
type Runner struct {
	config   *shared.Config
	logger   *log.Logger
	output   io.Writer
	provider services.Provider

	db    *sql.DB
	users *repositories.UserRepository
	lib   *library.Library
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Logger   *log.Logger
	Output   io.Writer
	Provider services.Provider
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		provider: opts.Provider,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, videoCommand, playlistCommand, listCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase opens the configured database and runs pending migrations.
func (r *Runner) openDatabase() error {
	if r.db != nil {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	r.users = repositories.NewUserRepository(db)
	return nil
}

// newProvider builds the metadata provider from configured credentials,
// preferring a saved OAuth token over the plain API key.
func (r *Runner) newProvider(ctx context.Context) services.Provider {
	creds := r.config.Credentials.YouTube
	provider := services.NewYouTubeProvider("", creds.APIKey)

	tokenPath := r.tokenPath()
	if creds.ClientID != "" && creds.ClientSecret != "" {
		if token, err := server.LoadToken(tokenPath); err == nil {
			oauthConf := server.NewGoogleConfig(creds.ClientID, creds.ClientSecret, r.redirectURL())
			provider = provider.WithTokenSource(ctx, oauthConf.TokenSource(ctx, token))
			r.logger.Debug("using oauth credentials", "token_path", tokenPath)
		}
	}

	return provider
}

// ensureLibrary opens the database and wires the library engine.
func (r *Runner) ensureLibrary(ctx context.Context) error {
	if r.lib != nil {
		return nil
	}
	if err := r.openDatabase(); err != nil {
		return err
	}

	if r.provider == nil {
		r.provider = r.newProvider(ctx)
	}

	r.lib = library.NewLibrary(
		r.provider,
		repositories.NewVideoRepository(r.db),
		repositories.NewPlaylistRepository(r.db),
		repositories.NewMembershipRepository(r.db),
		r.logger,
	)
	return nil
}

// owner resolves the configured library owner, creating nothing.
func (r *Runner) owner() (*models.User, error) {
	email := r.config.Library.OwnerEmail
	if email == "" {
		return nil, fmt.Errorf("%w: library.owner_email is not configured", shared.ErrUnauthorized)
	}

	user, err := r.users.GetByEmail(email)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("%w: no user for %s, run 'tubevault setup' first", shared.ErrUnauthorized, email)
	}
	return user, err
}

func (r *Runner) tokenPath() string {
	if p := r.config.Credentials.YouTube.TokenPath; p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tubevault_token.json"
	}
	return filepath.Join(home, ".tubevault", "token.json")
}

func (r *Runner) redirectURL() string {
	return fmt.Sprintf("http://%s:%d/callback", r.config.Server.Host, r.config.Server.Port)
}

func (r *Runner) callbackAddr() string {
	return fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Close releases the database handle if one was opened.
func (r *Runner) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
