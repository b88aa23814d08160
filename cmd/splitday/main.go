package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/splitday/internal/api"
	"github.com/terraincognita07/splitday/internal/catalog"
	"github.com/terraincognita07/splitday/internal/cli"
	"github.com/terraincognita07/splitday/internal/config"
	"github.com/terraincognita07/splitday/internal/db"
	"github.com/terraincognita07/splitday/internal/logging"
	splitdaymcp "github.com/terraincognita07/splitday/internal/mcp"
	"github.com/terraincognita07/splitday/internal/metrics"
	"github.com/terraincognita07/splitday/internal/services"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	root := &cobra.Command{
		Use:          "splitday",
		Short:        "Workout split tracker",
		Version:      version,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config.yaml file")

	root.AddCommand(
		serve,
		newSeedCommand(&configPath),
		newCreateUserCommand(&configPath),
		newResetPasswordCommand(&configPath),
		newMCPCommand(&configPath),
	)
	return root
}

func newSeedCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in exercise catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath, false, false)
			if err != nil {
				return err
			}
			repositories, err := openRepositories(cfg)
			if err != nil {
				return err
			}
			return cli.RunSeedCommand(repositories.Exercises, cmd.OutOrStdout())
		},
	}
}

func newCreateUserCommand(configPath *string) *cobra.Command {
	var name, email string
	command := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account, reading the password from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath, false, false)
			if err != nil {
				return err
			}
			repositories, err := openRepositories(cfg)
			if err != nil {
				return err
			}
			accounts := services.NewAuthService(repositories.Users)
			return cli.RunCreateUserCommand(accounts, name, email, os.Stdin, cmd.OutOrStdout())
		},
	}
	command.Flags().StringVar(&name, "name", "", "display name")
	command.Flags().StringVar(&email, "email", "", "login email")
	_ = command.MarkFlagRequired("email")
	_ = command.MarkFlagRequired("name")
	return command
}

func newResetPasswordCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Replace a user's password with a temporary one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, false, false)
			if err != nil {
				return err
			}
			repositories, err := openRepositories(cfg)
			if err != nil {
				return err
			}
			accounts := services.NewAuthService(repositories.Users)
			return cli.RunResetPasswordCommand(accounts, args[0], cmd.OutOrStdout())
		},
	}
}

func newMCPCommand(configPath *string) *cobra.Command {
	var userEmail string
	command := &cobra.Command{
		Use:   "mcp",
		Short: "Serve read-only workout tools over MCP stdio",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath, false, true)
			if err != nil {
				return err
			}
			if userEmail != "" {
				cfg.MCP.UserEmail = userEmail
			}
			return runMCP(cfg)
		},
	}
	command.Flags().StringVar(&userEmail, "user-email", "", "account the tools read from (overrides mcp.user_email)")
	return command
}

// loadConfig reads and validates settings and configures logging. Commands
// other than serve do not sign tokens and skip the secret checks.
func loadConfig(path string, requireSecret bool, stdoutReserved bool) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if requireSecret {
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	} else {
		if cfg.Database.Path == "" {
			return config.Config{}, config.ErrDatabasePathEmpty
		}
		if _, err := cfg.Location(); err != nil {
			return config.Config{}, err
		}
	}

	logging.Setup(logging.SetupParams{
		FileName:      cfg.Log.File,
		ToStdout:      cfg.Log.Stdout,
		Level:         cfg.Log.Level,
		FormatJSON:    cfg.Log.JSON,
		ConsoleStderr: stdoutReserved,
	})
	return cfg, nil
}

func openRepositories(cfg config.Config) (*db.Repositories, error) {
	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return db.NewRepositories(database), nil
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath, true, false)
	if err != nil {
		return err
	}
	location, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if cfg.Catalog.Seed {
		entries, err := catalog.Builtin()
		if err != nil {
			return err
		}
		if _, err := catalog.Seed(db.NewExerciseRepository(database), entries); err != nil {
			return err
		}
	}

	registry := metrics.NewRegistry()
	manager := metrics.NewManager(registry)
	handler, err := api.NewHandler(database, api.Options{
		SecretKey:    cfg.Auth.Secret,
		Location:     location,
		CookieSecure: cfg.Auth.CookieSecure,
		AccessTTL:    cfg.Auth.AccessTTL,
		RefreshTTL:   cfg.Auth.RefreshTTL,
		Metrics:      manager,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newServerApp(cfg, handler, manager, registry)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port": cfg.Server.Port,
		"db":   cfg.Database.Path,
		"tz":   location.String(),
	}).Info("splitday listening")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func runMCP(cfg config.Config) error {
	location, err := cfg.Location()
	if err != nil {
		return err
	}
	email := services.NormalizeAuthEmail(cfg.MCP.UserEmail)
	if email == "" {
		return errors.New("mcp.user_email or --user-email is required")
	}

	repositories, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	user, found, err := repositories.Users.FindByNormalizedEmail(email)
	if err != nil {
		return fmt.Errorf("load mcp user: %w", err)
	}
	if !found {
		return fmt.Errorf("user %s not found", email)
	}

	workouts := services.NewWorkoutService(repositories.WorkoutDays, repositories.SetRecords, repositories.Exercises, location)
	stats := services.NewStatsService(repositories.WorkoutDays, repositories.SetRecords, location)
	server := splitdaymcp.New(workouts, stats, location, version)

	logrus.WithField("user_id", user.ID).Info("serving mcp over stdio")
	return splitdaymcp.ServeStdio(server, user.ID)
}
