package charts

import (
	"strings"

	"github.com/terraincognita07/cyclejournal/internal/models"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

// ratingAxisMax is the top of every rating axis.
const ratingAxisMax = float64(models.MaxRating)

func metricLabel(metric string) string {
	if metric == models.RatingDay {
		return "Mood rating"
	}
	words := strings.Split(metric, "_")
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ")
}

// WeeklyTrend renders the weekly mean of a metric as a line.
func (renderer *Renderer) WeeklyTrend(trend services.WeeklyTrend) ([]byte, error) {
	if !trend.HasData {
		return nil, ErrNoData
	}
	labels := make([]string, 0, len(trend.Points))
	values := make([]*float64, 0, len(trend.Points))
	for _, point := range trend.Points {
		labels = append(labels, point.WeekEnding)
		values = append(values, point.Mean)
	}
	title := "Weekly Mood Trend"
	if trend.Metric != models.RatingDay {
		title = "Weekly " + metricLabel(trend.Metric) + " Trend"
	}
	return renderer.RenderLine(LineChart{
		Title:  title,
		YLabel: metricLabel(trend.Metric),
		Labels: labels,
		Values: values,
		YMin:   0,
		YMax:   ratingAxisMax,
	})
}

// MoodByPhase renders one bar per cycle phase; phases without values are drawn at zero.
func (renderer *Renderer) MoodByPhase(summary services.PhaseSummary) ([]byte, error) {
	if !summary.HasData {
		return nil, ErrNoData
	}
	labels := make([]string, 0, len(summary.Phases))
	values := make([]float64, 0, len(summary.Phases))
	for _, phase := range summary.Phases {
		labels = append(labels, string(phase.Phase))
		values = append(values, valueOrZero(phase.Mean))
	}
	title := "Average Mood by Cycle Phase"
	if summary.Metric != models.RatingDay {
		title = "Average " + metricLabel(summary.Metric) + " by Cycle Phase"
	}
	return renderer.RenderBars(BarChart{
		Title:  title,
		YLabel: metricLabel(summary.Metric),
		Labels: labels,
		Values: values,
		YMax:   ratingAxisMax,
	})
}

func (renderer *Renderer) FactorAverages(summary services.FactorSummary) ([]byte, error) {
	if !summary.HasData {
		return nil, ErrNoData
	}
	labels := make([]string, 0, len(summary.Factors))
	values := make([]float64, 0, len(summary.Factors))
	for _, factor := range summary.Factors {
		labels = append(labels, factor.Factor)
		values = append(values, valueOrZero(factor.Mean))
	}
	return renderer.RenderBars(BarChart{
		Title:  "Average Daily Factors",
		YLabel: "Average (0-10)",
		Labels: labels,
		Values: values,
		YMax:   ratingAxisMax,
	})
}

// PeriodLengths renders the length of each completed period, labelled by its start.
func (renderer *Renderer) PeriodLengths(metrics services.PeriodMetrics) ([]byte, error) {
	if len(metrics.Lengths) == 0 {
		return nil, ErrNoData
	}
	labels := make([]string, 0, len(metrics.Lengths))
	values := make([]float64, 0, len(metrics.Lengths))
	for _, length := range metrics.Lengths {
		labels = append(labels, length.StartDate)
		values = append(values, float64(length.Days))
	}
	return renderer.RenderBars(BarChart{
		Title:  "Period Length",
		YLabel: "Days",
		Labels: labels,
		Values: values,
	})
}

// PeriodGaps renders the days between consecutive period starts, labelled by the
// later start.
func (renderer *Renderer) PeriodGaps(metrics services.PeriodMetrics) ([]byte, error) {
	if len(metrics.Frequencies) == 0 {
		return nil, ErrNoData
	}
	labels := make([]string, 0, len(metrics.Frequencies))
	values := make([]float64, 0, len(metrics.Frequencies))
	for _, gap := range metrics.Frequencies {
		labels = append(labels, gap.ToStart)
		values = append(values, float64(gap.Days))
	}
	return renderer.RenderBars(BarChart{
		Title:  "Days Between Periods",
		YLabel: "Days",
		Labels: labels,
		Values: values,
	})
}

func valueOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
