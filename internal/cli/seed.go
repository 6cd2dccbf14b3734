package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

func newSeedCommand(env *commandEnv) *cobra.Command {
	var (
		userName string
		days     int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a journal with deterministic sample logs and periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := env.openJournal()
			if err != nil {
				return err
			}
			defer j.close()

			user, err := j.users.EnsureUser(fallbackName(userName, env.cfg.DefaultUser))
			if err != nil {
				return err
			}
			return runSeed(j, user.ID, user.Name, time.Now().In(env.cfg.Location()), days, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&userName, "user", "", "user to seed (created when missing; default DEFAULT_USER)")
	cmd.Flags().IntVar(&days, "days", services.DefaultSeedDays, "number of days ending today")
	return cmd
}

func runSeed(j *journal, userID uint, userName string, end time.Time, days int, out io.Writer) error {
	result, err := j.seeder.Seed(userID, end, days)
	if err != nil {
		return fmt.Errorf("seed journal: %w", err)
	}
	fmt.Fprintf(out, "Seeded %d logs and %d periods for %s\n", result.Logs, result.Periods, userName)
	return nil
}

func fallbackName(name string, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
