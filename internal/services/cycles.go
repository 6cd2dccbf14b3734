package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

const (
	DefaultCycleLength = 28

	follicularPhaseEndDay = 7
	ovulatoryPhaseEndDay  = 14
)

type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
	PhaseUnknown    Phase = "unknown"
)

// Phases lists the known phases in reporting order.
var Phases = []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal}

type periodSpan struct {
	start time.Time
	end   time.Time
}

// cycleCalendar answers phase questions for one user's recorded periods.
type cycleCalendar struct {
	spans       []periodSpan
	cycleLength int
}

func newCycleCalendar(periods []models.Period, cycleLength int) cycleCalendar {
	if cycleLength <= 0 {
		cycleLength = DefaultCycleLength
	}

	spans := make([]periodSpan, 0, len(periods))
	for _, period := range periods {
		start, err := ParseLogDate(period.StartDate)
		if err != nil {
			continue
		}
		end := start
		if period.EndDate != nil {
			if parsedEnd, err := ParseLogDate(*period.EndDate); err == nil && !parsedEnd.Before(start) {
				end = parsedEnd
			}
		}
		spans = append(spans, periodSpan{start: start, end: end})
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})
	return cycleCalendar{spans: spans, cycleLength: cycleLength}
}

// latestStart returns the newest period start on or before day.
func (calendar cycleCalendar) latestStart(day time.Time) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, span := range calendar.spans {
		if span.start.After(day) {
			break
		}
		latest = span.start
		found = true
	}
	return latest, found
}

func (calendar cycleCalendar) phase(day time.Time) Phase {
	for _, span := range calendar.spans {
		if !day.Before(span.start) && !day.After(span.end) {
			return PhaseMenstrual
		}
	}

	start, found := calendar.latestStart(day)
	if !found {
		return PhaseUnknown
	}
	cycleDay := daysBetween(start, day) % calendar.cycleLength
	switch {
	case cycleDay < follicularPhaseEndDay:
		return PhaseFollicular
	case cycleDay < ovulatoryPhaseEndDay:
		return PhaseOvulatory
	default:
		return PhaseLuteal
	}
}

// cycleDay is the 1-based day offset from the latest period start, 0 when none.
func (calendar cycleCalendar) cycleDay(day time.Time) int {
	start, found := calendar.latestStart(day)
	if !found {
		return 0
	}
	return daysBetween(start, day) + 1
}

// PhaseForDate buckets a date into a cycle phase with a fixed-window heuristic: days
// inside a recorded period are menstrual, later days count from the latest start.
func PhaseForDate(day time.Time, periods []models.Period, cycleLength int) Phase {
	return newCycleCalendar(periods, cycleLength).phase(day)
}

func daysBetween(from time.Time, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
