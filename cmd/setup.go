package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

// Setup initializes the config file, database, and library owner account.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config

	r.logger.Info("initializing database", "path", config.Database.Path)
	if err := r.openDatabase(); err != nil {
		return err
	}

	email := config.Library.OwnerEmail
	if email == "" {
		r.logger.Warn("library.owner_email not set, skipping owner creation", "path", configPath)
		return r.writePlain("Database ready. Set library.owner_email in %s and re-run setup.\n", configPath)
	}

	if _, err := r.users.GetByEmail(email); err == nil {
		r.logger.Info("library owner already exists", "email", email)
	} else if errors.Is(err, shared.ErrNotFound) {
		owner := models.NewUser(0, email, config.Library.OwnerName)
		if err := r.users.Create(owner); err != nil {
			return fmt.Errorf("failed to create library owner: %w", err)
		}
		r.logger.Info("library owner created", "email", email, "id", owner.ID())
	} else {
		return err
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return r.writePlain("✓ Setup complete. Library owner: %s\n", email)
}
