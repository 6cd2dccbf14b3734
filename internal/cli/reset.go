package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/db"
)

var errResetNotConfirmed = errors.New("refusing to reset without --yes")

func newResetCommand(env *commandEnv) *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every journal table and recreate the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunResetCommand(env.cfg.Database.Path, confirmed, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm that all stored data may be deleted")
	return cmd
}

func RunResetCommand(dbPath string, confirmed bool, out io.Writer) error {
	if !confirmed {
		return errResetNotConfirmed
	}

	database, err := db.OpenSQLite(dbPath, nil)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	if err := db.ResetSchema(database); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}

	fmt.Fprintln(out, "✅ Database reset successful")
	fmt.Fprintf(out, "Schema rebuilt at %s\n", dbPath)
	return nil
}
