package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclejournal/internal/charts"
	"github.com/terraincognita07/cyclejournal/internal/models"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

const (
	defaultReportDir = "reports"
	reportTopTags    = 5
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	warnColor    = color.New(color.FgYellow)
	valueColor   = color.New(color.FgGreen)
	faintColor   = color.New(color.Faint)
)

func newReportCommand(env *commandEnv) *cobra.Command {
	var (
		userName string
		outDir   string
		metric   string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print journal statistics and write the trend charts as PNG files",
		Long: `Print a colored summary of a user's journal and write the charts to --out:

  weekly_trend.png    weekly mean of --metric (default: mood rating)
  phase_mood.png      mean of --metric per cycle phase
  factors.png         average energy, sleep, stress, exercise, nutrition, social
  period_lengths.png  length of every completed period

Charts without data are skipped.`,
		Args: cobra.NoArgs,
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
			return runReport(j, user, metric, outDir, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&userName, "user", "", "user name (default DEFAULT_USER)")
	cmd.Flags().StringVar(&outDir, "out", defaultReportDir, "directory for the PNG charts")
	cmd.Flags().StringVar(&metric, "metric", "", "rating used by the trend and phase charts")
	return cmd
}

func runReport(j *journal, user models.User, metric string, outDir string, out io.Writer) error {
	if _, err := services.ResolveMetric(metric); err != nil {
		return fmt.Errorf("unknown metric %q", metric)
	}
	renderer, err := charts.NewRenderer(charts.Options{})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	headingColor.Fprintf(out, "Journal report for %s\n", user.Name)
	summary, err := j.export.BuildSummary(user.ID, services.ExportRange{})
	if err != nil {
		return err
	}
	if summary.HasData {
		fmt.Fprintf(out, "%s entries from %s to %s\n", valueColor.Sprint(summary.TotalEntries), summary.DateFrom, summary.DateTo)
	} else {
		warnColor.Fprintln(out, services.MessageNoLogs)
	}

	trend, err := j.stats.WeeklyTrend(user.ID, metric)
	if err != nil {
		return err
	}
	printSection(out, "Weekly trend")
	if trend.HasData {
		last := trend.Points[len(trend.Points)-1]
		fmt.Fprintf(out, "  %d weeks, week ending %s: %s\n", len(trend.Points), last.WeekEnding, formatMean(last.Mean))
	} else {
		warnColor.Fprintln(out, "  "+trend.Message)
	}
	image, err := renderer.WeeklyTrend(trend)
	if err := writeChart(out, outDir, "weekly_trend.png", image, err); err != nil {
		return err
	}

	phases, err := j.stats.MoodByPhase(user.ID, metric)
	if err != nil {
		return err
	}
	printSection(out, "By cycle phase")
	if phases.HasData {
		for _, phase := range phases.Phases {
			fmt.Fprintf(out, "  %s %s %s\n", padRight(string(phase.Phase), 12), formatMean(phase.Mean), faintColor.Sprintf("(%d logs)", phase.Count))
		}
		if phases.UnknownCount > 0 {
			faintColor.Fprintf(out, "  %d logs precede the first period\n", phases.UnknownCount)
		}
	} else {
		warnColor.Fprintln(out, "  "+phases.Message)
	}
	image, err = renderer.MoodByPhase(phases)
	if err := writeChart(out, outDir, "phase_mood.png", image, err); err != nil {
		return err
	}

	factors, err := j.stats.FactorAverages(user.ID)
	if err != nil {
		return err
	}
	printSection(out, "Factors")
	if factors.HasData {
		for _, factor := range factors.Factors {
			fmt.Fprintf(out, "  %s %s\n", padRight(factor.Factor, 12), formatMean(factor.Mean))
		}
	} else {
		warnColor.Fprintln(out, "  "+factors.Message)
	}
	image, err = renderer.FactorAverages(factors)
	if err := writeChart(out, outDir, "factors.png", image, err); err != nil {
		return err
	}

	periods, err := j.stats.PeriodMetrics(user.ID)
	if err != nil {
		return err
	}
	printSection(out, "Periods")
	if periods.HasData {
		fmt.Fprintf(out, "  average length    %s days\n", formatMean(periods.AverageLength))
		fmt.Fprintf(out, "  average frequency %s days\n", formatMean(periods.AverageFrequency))
	} else {
		warnColor.Fprintln(out, "  "+periods.Message)
	}
	image, err = renderer.PeriodLengths(periods)
	if err := writeChart(out, outDir, "period_lengths.png", image, err); err != nil {
		return err
	}
	image, err = renderer.PeriodGaps(periods)
	if err := writeChart(out, outDir, "period_gaps.png", image, err); err != nil {
		return err
	}

	printSection(out, "Most frequent tags")
	for _, kind := range models.TagKinds {
		tags, err := j.stats.TagFrequencies(user.ID, string(kind))
		if err != nil {
			return err
		}
		if !tags.HasData {
			faintColor.Fprintf(out, "  %s none\n", padRight(string(kind), 10))
			continue
		}
		top := tags.Tags
		if len(top) > reportTopTags {
			top = top[:reportTopTags]
		}
		parts := make([]string, 0, len(top))
		for _, tag := range top {
			parts = append(parts, fmt.Sprintf("%s (%d)", tag.Name, tag.Count))
		}
		fmt.Fprintf(out, "  %s %s\n", padRight(string(kind), 10), strings.Join(parts, ", "))
	}
	return nil
}

func printSection(out io.Writer, title string) {
	fmt.Fprintln(out)
	headingColor.Fprintln(out, title)
}

// writeChart stores a rendered chart under dir. ErrNoData is not an error.
func writeChart(out io.Writer, dir string, name string, image []byte, renderErr error) error {
	if errors.Is(renderErr, charts.ErrNoData) {
		return nil
	}
	if renderErr != nil {
		return fmt.Errorf("render %s: %w", name, renderErr)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	faintColor.Fprintf(out, "  wrote %s\n", path)
	return nil
}

func formatMean(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return valueColor.Sprintf("%.1f", *value)
}

func padRight(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}
