package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/api"
	"github.com/terraincognita07/cyclejournal/internal/db"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), env)
		},
	}
}

func runServe(ctx context.Context, env *commandEnv) error {
	location := env.cfg.Location()
	time.Local = location

	database, err := db.OpenSQLite(env.cfg.Database.Path, env.logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			env.logger.Warn("close database failed", "error", err)
		}
	}()

	handler, err := api.NewHandler(database, api.Settings{
		SecretKey:    env.cfg.Auth.SecretKey,
		AuthRequired: env.cfg.Auth.Required,
		DefaultUser:  env.cfg.DefaultUser,
		CycleLength:  env.cfg.Analytics.CycleLength,
		Location:     location,
	}, env.logger)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := api.NewApp(handler, api.AppOptions{
		CORSOrigins: env.cfg.Server.CORSOrigins,
		Logger:      env.logger,
		AccessLog:   true,
	})

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			env.logger.Error("server shutdown failed", "error", err)
		}
	}()

	env.logger.Info("cyclejournal listening",
		"addr", env.cfg.ListenAddr(),
		"db", env.cfg.Database.Path,
		"tz", location.String(),
		"auth_required", env.cfg.Auth.Required,
	)
	if err := app.Listen(env.cfg.ListenAddr()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
