package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/config"
	"github.com/terraincognita07/cyclejournal/internal/logging"
)

const defaultConfigPath = "config.yaml"

// commandEnv carries what PersistentPreRunE loads for every subcommand.
type commandEnv struct {
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
}

func (env *commandEnv) load() error {
	cfg, err := config.Load(env.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	env.cfg = cfg
	env.logger = logger
	return nil
}

func (env *commandEnv) openJournal() (*journal, error) {
	return openJournal(env.cfg.Database.Path, env.cfg.Analytics.CycleLength, env.logger)
}

// NewRootCommand builds the cyclejournal command tree.
func NewRootCommand() *cobra.Command {
	env := &commandEnv{}

	root := &cobra.Command{
		Use:   "cyclejournal",
		Short: "Daily mood, symptom and cycle journal",
		Long: `cyclejournal stores daily logs (ratings, moods, emotions, symptoms and a journal
entry) with period records, and renders trend charts over HTTP or as PNG files.

Configuration comes from an optional YAML file (--config) and environment
variables such as DB_PATH, PORT, SECRET_KEY, AUTH_REQUIRED and CYCLE_LENGTH.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.logger != nil {
				env.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&env.configPath, "config", defaultConfigPath, "path to an optional YAML config file")

	root.AddCommand(
		newServeCommand(env),
		newMigrateCommand(env),
		newResetCommand(env),
		newSeedCommand(env),
		newUserCommand(env),
		newPeriodCommand(env),
		newTokenCommand(env),
		newSecretCommand(),
		newReportCommand(env),
	)
	return root
}

func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
