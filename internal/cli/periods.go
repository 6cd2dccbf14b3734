package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

func newPeriodCommand(env *commandEnv) *cobra.Command {
	var userName string
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Record and list periods",
	}
	cmd.PersistentFlags().StringVar(&userName, "user", "", "user name (default DEFAULT_USER)")

	var startDate, endDate string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := env.openJournal()
			if err != nil {
				return err
			}
			defer j.close()

			user, err := j.findUser(userName, env.cfg.DefaultUser)
			if err != nil {
				return err
			}
			return runPeriodAdd(j, user.ID, services.PeriodInput{StartDate: startDate, EndDate: endDate}, cmd.OutOrStdout())
		},
	}
	add.Flags().StringVar(&startDate, "start", "", "first day, YYYY-MM-DD")
	add.Flags().StringVar(&endDate, "end", "", "last day, YYYY-MM-DD (optional)")
	_ = add.MarkFlagRequired("start")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded periods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := env.openJournal()
			if err != nil {
				return err
			}
			defer j.close()

			user, err := j.findUser(userName, env.cfg.DefaultUser)
			if err != nil {
				return err
			}
			return runPeriodList(j, user.ID, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func runPeriodAdd(j *journal, userID uint, input services.PeriodInput, out io.Writer) error {
	period, err := j.periods.RecordPeriod(userID, input)
	switch {
	case errors.Is(err, services.ErrInvalidPeriodDate):
		return errors.New("dates must use YYYY-MM-DD")
	case errors.Is(err, services.ErrPeriodEndBeforeStart):
		return errors.New("end date is before start date")
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "Recorded period %d starting %s\n", period.ID, period.StartDate)
	return nil
}

func runPeriodList(j *journal, userID uint, out io.Writer) error {
	periods, err := j.periods.ListPeriods(userID)
	if err != nil {
		return fmt.Errorf("list periods: %w", err)
	}
	if len(periods) == 0 {
		fmt.Fprintln(out, services.MessageNoPeriods)
		return nil
	}

	faint := color.New(color.Faint)
	for _, period := range periods {
		end := "ongoing"
		if period.EndDate != nil {
			end = *period.EndDate
		}
		fmt.Fprintf(out, "%s %s → %s\n", faint.Sprintf("%4d", period.ID), period.StartDate, end)
	}
	return nil
}
