package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/db"
)

func newMigrateCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations and list the applied ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMigrateCommand(env.cfg.Database.Path, cmd.OutOrStdout())
		},
	}
}

func RunMigrateCommand(dbPath string, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath, nil)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	applied, err := db.ListAppliedMigrations(database)
	if err != nil {
		return err
	}
	for _, migration := range applied {
		fmt.Fprintf(out, "%s  %-32s  %s\n", migration.Version, migration.Name, migration.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(out, "%d migrations applied\n", len(applied))
	return nil
}
