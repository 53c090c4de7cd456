package services

import (
	"fmt"
	"time"
)

// PeriodKind enumerates the supported reporting periods.
type PeriodKind int

const (
	PeriodDaily PeriodKind = iota
	PeriodWeekly
	PeriodMonthly
	PeriodQuarterly
	PeriodYearly
	PeriodAllTime
	PeriodCustom
)

// DateRange is an inclusive calendar date range. Both bounds are UTC
// midnights.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DayCount returns the number of calendar days the range covers, inclusive.
func (r DateRange) DayCount() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether t's calendar date falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

var (
	// allTimeEpoch is the platform launch date; "alltime" reports start here.
	allTimeEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	// earliestSupportedDate floors previous-range computation so comparative
	// windows never reach into nonsense dates.
	earliestSupportedDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// periodTokens maps every accepted period token, including the short aliases
// used by the dashboard endpoints, to its kind.
var periodTokens = map[string]PeriodKind{
	"daily":     PeriodDaily,
	"today":     PeriodDaily,
	"weekly":    PeriodWeekly,
	"week":      PeriodWeekly,
	"monthly":   PeriodMonthly,
	"month":     PeriodMonthly,
	"quarterly": PeriodQuarterly,
	"quarter":   PeriodQuarterly,
	"yearly":    PeriodYearly,
	"year":      PeriodYearly,
	"alltime":   PeriodAllTime,
	"custom":    PeriodCustom,
}

// periodResolvers computes the date range of each non-custom period relative
// to today.
var periodResolvers = map[PeriodKind]func(today time.Time) DateRange{
	PeriodDaily: func(today time.Time) DateRange {
		return DateRange{Start: today, End: today}
	},
	PeriodWeekly: func(today time.Time) DateRange {
		return DateRange{Start: today.AddDate(0, 0, -6), End: today}
	},
	PeriodMonthly: func(today time.Time) DateRange {
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: first, End: today}
	},
	PeriodQuarterly: func(today time.Time) DateRange {
		quarterMonth := time.Month((int(today.Month())-1)/3*3 + 1)
		first := time.Date(today.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: first, End: today}
	},
	PeriodYearly: func(today time.Time) DateRange {
		first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: first, End: today}
	},
	PeriodAllTime: func(today time.Time) DateRange {
		return DateRange{Start: allTimeEpoch, End: today}
	},
}

// ResolvePeriod turns a period token plus optional custom bounds into an
// inclusive date range ending no later than today. Unknown tokens and a
// custom period missing either bound yield ErrInvalidPeriod; a range whose
// start falls after its end yields ErrInvalidDateRange.
func ResolvePeriod(token string, customStart, customEnd *time.Time, today time.Time) (DateRange, error) {
	kind, ok := periodTokens[token]
	if !ok {
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
	}
	today = dateOnly(today)

	var rng DateRange
	if kind == PeriodCustom {
		if customStart == nil || customEnd == nil {
			return DateRange{}, fmt.Errorf("%w: custom period requires both start and end dates", ErrInvalidPeriod)
		}
		rng = DateRange{Start: dateOnly(*customStart), End: dateOnly(*customEnd)}
	} else {
		rng = periodResolvers[kind](today)
	}

	if rng.Start.After(rng.End) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidDateRange, rng.Start.Format(dateLayout), rng.End.Format(dateLayout))
	}
	return rng, nil
}

// PreviousRange returns the comparison window immediately preceding rng: the
// same number of days, ending the day before rng starts. The result is
// clamped so it never begins before the supported floor; it never fails.
func PreviousRange(rng DateRange) DateRange {
	days := rng.DayCount()
	end := rng.Start.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))
	if start.Before(earliestSupportedDate) {
		start = earliestSupportedDate
	}
	if end.Before(start) {
		end = start
	}
	return DateRange{Start: start, End: end}
}

const dateLayout = "2006-01-02"

// Grouping granularities for time-series bucketing.
const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

// GroupKey buckets a timestamp for time-series grouping: "2006-01-02" for
// days, "2006-W##" (ISO week, zero-padded) for weeks, "2006-01" for months.
// Unknown granularities fall back to daily keys.
func GroupKey(t time.Time, granularity string) string {
	switch granularity {
	case GroupByWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GroupByMonth:
		return t.Format("2006-01")
	default:
		return t.Format(dateLayout)
	}
}

// dateOnly truncates a timestamp to its calendar date at UTC midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
