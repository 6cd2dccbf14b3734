package services

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

const (
	MessageNoLogs             = "No logs for this user."
	MessageNoMetricValues     = "No values recorded for this metric."
	MessageInsufficientData   = "Insufficient data for this plot."
	MessageNoPeriods          = "No period data for this user."
	MessageNoCompletedPeriods = "No completed periods recorded."
)

type WeeklyPoint struct {
	WeekEnding string   `json:"week_ending"`
	Count      int      `json:"count"`
	Mean       *float64 `json:"mean"`
}

type WeeklyTrend struct {
	Metric  string        `json:"metric"`
	HasData bool          `json:"has_data"`
	Message string        `json:"message,omitempty"`
	Points  []WeeklyPoint `json:"points"`
}

type PhaseMean struct {
	Phase Phase    `json:"phase"`
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
}

type PhaseSummary struct {
	Metric       string      `json:"metric"`
	HasData      bool        `json:"has_data"`
	Message      string      `json:"message,omitempty"`
	Phases       []PhaseMean `json:"phases"`
	UnknownCount int         `json:"unknown_count"`
}

type FactorAverage struct {
	Factor string   `json:"factor"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
}

type FactorSummary struct {
	HasData bool            `json:"has_data"`
	Message string          `json:"message,omitempty"`
	Factors []FactorAverage `json:"factors"`
}

type PeriodLength struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

type PeriodGap struct {
	FromStart string `json:"from_start"`
	ToStart   string `json:"to_start"`
	Days      int    `json:"days"`
}

type PeriodMetrics struct {
	HasData          bool           `json:"has_data"`
	Message          string         `json:"message,omitempty"`
	Lengths          []PeriodLength `json:"lengths"`
	Frequencies      []PeriodGap    `json:"frequencies"`
	AverageLength    *float64       `json:"average_length"`
	AverageFrequency *float64       `json:"average_frequency"`
}

type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TagSummary struct {
	Kind    models.TagKind `json:"kind"`
	HasData bool           `json:"has_data"`
	Message string         `json:"message,omitempty"`
	Tags    []TagCount     `json:"tags"`
}

type MoodPattern struct {
	CycleDay int    `json:"cycle_day"`
	Mood     string `json:"mood"`
	Count    int    `json:"count"`
}

type PatternSummary struct {
	HasData  bool          `json:"has_data"`
	Message  string        `json:"message,omitempty"`
	Patterns []MoodPattern `json:"patterns"`
}

type meanAccumulator struct {
	sum   float64
	count int
}

func (acc *meanAccumulator) add(value int) {
	acc.sum += float64(value)
	acc.count++
}

func (acc meanAccumulator) mean() *float64 {
	if acc.count == 0 {
		return nil
	}
	value := acc.sum / float64(acc.count)
	return &value
}

// weekEnding maps a day to the Sunday closing its week.
func weekEnding(day time.Time) time.Time {
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

// WeeklyTrendFor averages metric per Sunday-ending week. Every week between the first
// and last logged one is present; weeks without values carry a nil mean.
func WeeklyTrendFor(logs []models.DailyLog, metric string) WeeklyTrend {
	trend := WeeklyTrend{Metric: metric, Points: []WeeklyPoint{}}
	if len(logs) == 0 {
		trend.Message = MessageNoLogs
		return trend
	}

	buckets := make(map[string]*meanAccumulator)
	var first, last time.Time
	for _, entry := range logs {
		value := entry.Rating(metric)
		if value == nil {
			continue
		}
		day, err := ParseLogDate(entry.LogDate)
		if err != nil {
			continue
		}
		ending := weekEnding(day)
		key := ending.Format(models.DateLayout)
		if buckets[key] == nil {
			buckets[key] = &meanAccumulator{}
		}
		buckets[key].add(*value)
		if first.IsZero() || ending.Before(first) {
			first = ending
		}
		if ending.After(last) {
			last = ending
		}
	}
	if len(buckets) == 0 {
		trend.Message = MessageNoMetricValues
		return trend
	}

	for ending := first; !ending.After(last); ending = ending.AddDate(0, 0, 7) {
		key := ending.Format(models.DateLayout)
		point := WeeklyPoint{WeekEnding: key}
		if acc := buckets[key]; acc != nil {
			point.Count = acc.count
			point.Mean = acc.mean()
		}
		trend.Points = append(trend.Points, point)
	}
	trend.HasData = true
	return trend
}

// MoodByPhaseFor averages metric per cycle phase. Logs whose phase cannot be decided
// are only counted.
func MoodByPhaseFor(logs []models.DailyLog, periods []models.Period, metric string, cycleLength int) PhaseSummary {
	summary := PhaseSummary{Metric: metric, Phases: make([]PhaseMean, 0, len(Phases))}
	for _, phase := range Phases {
		summary.Phases = append(summary.Phases, PhaseMean{Phase: phase})
	}
	if len(logs) == 0 || len(periods) == 0 {
		summary.Message = MessageInsufficientData
		return summary
	}

	calendar := newCycleCalendar(periods, cycleLength)
	accumulators := make(map[Phase]*meanAccumulator, len(Phases))
	for _, phase := range Phases {
		accumulators[phase] = &meanAccumulator{}
	}
	for _, entry := range logs {
		value := entry.Rating(metric)
		if value == nil {
			continue
		}
		day, err := ParseLogDate(entry.LogDate)
		if err != nil {
			continue
		}
		phase := calendar.phase(day)
		if phase == PhaseUnknown {
			summary.UnknownCount++
			continue
		}
		accumulators[phase].add(*value)
	}

	for index := range summary.Phases {
		acc := accumulators[summary.Phases[index].Phase]
		summary.Phases[index].Count = acc.count
		summary.Phases[index].Mean = acc.mean()
		if acc.count > 0 {
			summary.HasData = true
		}
	}
	if !summary.HasData {
		summary.Message = MessageInsufficientData
	}
	return summary
}

type factorSource struct {
	name    string
	column  string
	pattern *regexp.Regexp
}

var factorSources = []factorSource{
	{name: "energy", column: models.RatingEnergy, pattern: regexp.MustCompile(`(?i)\benergy:\s*(\d+)`)},
	{name: "sleep", column: models.RatingSleep, pattern: regexp.MustCompile(`(?i)\bsleep:\s*(\d+)`)},
	{name: "stress", column: models.RatingStress, pattern: regexp.MustCompile(`(?i)\bstress:\s*(\d+)`)},
	{name: "exercise", column: models.RatingExercise, pattern: regexp.MustCompile(`(?i)\bexercise:\s*(\d+)`)},
	{name: "nutrition", column: models.RatingNutrition, pattern: regexp.MustCompile(`(?i)\bnutrition:\s*(\d+)`)},
	{name: "social", column: models.RatingSocialConnection, pattern: regexp.MustCompile(`(?i)\bsocial(?:_connection)?:\s*(\d+)`)},
}

// FactorNames lists the factors in reporting order.
func FactorNames() []string {
	names := make([]string, 0, len(factorSources))
	for _, source := range factorSources {
		names = append(names, source.name)
	}
	return names
}

// factorValue prefers the rating column and falls back to a "name:N" marker in the
// journal text.
func factorValue(entry models.DailyLog, source factorSource) (int, bool) {
	if value := entry.Rating(source.column); value != nil {
		return *value, true
	}
	matches := source.pattern.FindStringSubmatch(entry.JournalEntry)
	if len(matches) != 2 {
		return 0, false
	}
	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	return value, true
}

func FactorAveragesFor(logs []models.DailyLog) FactorSummary {
	summary := FactorSummary{Factors: make([]FactorAverage, 0, len(factorSources))}
	if len(logs) == 0 {
		summary.Message = MessageNoLogs
		for _, source := range factorSources {
			summary.Factors = append(summary.Factors, FactorAverage{Factor: source.name})
		}
		return summary
	}

	for _, source := range factorSources {
		acc := meanAccumulator{}
		for _, entry := range logs {
			if value, ok := factorValue(entry, source); ok {
				acc.add(value)
			}
		}
		summary.Factors = append(summary.Factors, FactorAverage{
			Factor: source.name,
			Count:  acc.count,
			Mean:   acc.mean(),
		})
		if acc.count > 0 {
			summary.HasData = true
		}
	}
	if !summary.HasData {
		summary.Message = MessageNoMetricValues
	}
	return summary
}

// PeriodMetricsFor computes inclusive lengths of closed periods and the day gaps
// between consecutive starts.
func PeriodMetricsFor(periods []models.Period) PeriodMetrics {
	metrics := PeriodMetrics{Lengths: []PeriodLength{}, Frequencies: []PeriodGap{}}
	if len(periods) == 0 {
		metrics.Message = MessageNoPeriods
		return metrics
	}

	calendar := newCycleCalendar(periods, DefaultCycleLength)
	lengthAcc := meanAccumulator{}
	for _, period := range periods {
		if period.EndDate == nil {
			continue
		}
		start, startErr := ParseLogDate(period.StartDate)
		end, endErr := ParseLogDate(*period.EndDate)
		if startErr != nil || endErr != nil || end.Before(start) {
			continue
		}
		days := daysBetween(start, end) + 1
		metrics.Lengths = append(metrics.Lengths, PeriodLength{
			StartDate: start.Format(models.DateLayout),
			EndDate:   end.Format(models.DateLayout),
			Days:      days,
		})
		lengthAcc.add(days)
	}
	sort.SliceStable(metrics.Lengths, func(i, j int) bool {
		return metrics.Lengths[i].StartDate < metrics.Lengths[j].StartDate
	})

	gapAcc := meanAccumulator{}
	for index := 1; index < len(calendar.spans); index++ {
		previous := calendar.spans[index-1].start
		current := calendar.spans[index].start
		days := daysBetween(previous, current)
		metrics.Frequencies = append(metrics.Frequencies, PeriodGap{
			FromStart: previous.Format(models.DateLayout),
			ToStart:   current.Format(models.DateLayout),
			Days:      days,
		})
		gapAcc.add(days)
	}

	metrics.AverageLength = lengthAcc.mean()
	metrics.AverageFrequency = gapAcc.mean()
	metrics.HasData = len(metrics.Lengths) > 0 || len(metrics.Frequencies) > 0
	if !metrics.HasData {
		metrics.Message = MessageNoCompletedPeriods
	}
	return metrics
}

// TagFrequenciesFor counts the logs carrying each tag, most frequent first.
func TagFrequenciesFor(logs []models.DailyLog, kind models.TagKind) TagSummary {
	summary := TagSummary{Kind: kind, Tags: []TagCount{}}
	counts := make(map[string]int)
	for _, entry := range logs {
		for _, name := range entry.Tags(kind) {
			counts[name]++
		}
	}
	for name, count := range counts {
		summary.Tags = append(summary.Tags, TagCount{Name: name, Count: count})
	}
	sortTagCounts(summary.Tags)

	summary.HasData = len(summary.Tags) > 0
	if !summary.HasData {
		summary.Message = MessageNoLogs
	}
	return summary
}

func sortTagCounts(tags []TagCount) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Name < tags[j].Name
	})
}

// MoodPatternsFor reports the most frequent mood per cycle day. Ties go to the
// alphabetically first mood.
func MoodPatternsFor(logs []models.DailyLog, periods []models.Period, cycleLength int) PatternSummary {
	summary := PatternSummary{Patterns: []MoodPattern{}}
	if len(logs) == 0 || len(periods) == 0 {
		summary.Message = MessageInsufficientData
		return summary
	}

	calendar := newCycleCalendar(periods, cycleLength)
	countsByDay := make(map[int]map[string]int)
	for _, entry := range logs {
		if len(entry.Moods) == 0 {
			continue
		}
		day, err := ParseLogDate(entry.LogDate)
		if err != nil {
			continue
		}
		cycleDay := calendar.cycleDay(day)
		if cycleDay == 0 {
			continue
		}
		if countsByDay[cycleDay] == nil {
			countsByDay[cycleDay] = make(map[string]int)
		}
		for _, mood := range entry.Moods {
			countsByDay[cycleDay][mood]++
		}
	}

	for cycleDay, counts := range countsByDay {
		tags := make([]TagCount, 0, len(counts))
		for mood, count := range counts {
			tags = append(tags, TagCount{Name: mood, Count: count})
		}
		sortTagCounts(tags)
		summary.Patterns = append(summary.Patterns, MoodPattern{CycleDay: cycleDay, Mood: tags[0].Name, Count: tags[0].Count})
	}
	sort.Slice(summary.Patterns, func(i, j int) bool {
		return summary.Patterns[i].CycleDay < summary.Patterns[j].CycleDay
	})

	summary.HasData = len(summary.Patterns) > 0
	if !summary.HasData {
		summary.Message = MessageInsufficientData
	}
	return summary
}
