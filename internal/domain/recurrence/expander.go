package recurrence

import "time"

// DefaultMaxOccurrences bounds expansion when a definition carries no explicit
// cap, guaranteeing termination for open-ended ranges.
const DefaultMaxOccurrences = 365

// CustomMatcher decides membership for PatternCustom definitions. A nil
// matcher accepts every date in range.
type CustomMatcher func(date time.Time) bool

// Expand returns the ordered occurrence dates of the definition, bounded by
// the date range and the occurrence cap. The interval multiplier applies
// uniformly to every pattern: preview and generation share this single code
// path, so the two can never disagree about which dates a definition covers.
func (d *Definition) Expand(custom CustomMatcher) []time.Time {
	limit := DefaultMaxOccurrences
	if d.maxOccurrences != nil && *d.maxOccurrences < limit {
		limit = *d.maxOccurrences
	}

	var dates []time.Time
	for date := d.rangeStart; !date.After(d.rangeEnd); date = date.AddDate(0, 0, 1) {
		if d.matches(date, custom) {
			dates = append(dates, date)
			if len(dates) >= limit {
				break
			}
		}
	}
	return dates
}

// ExpandUpTo is Expand clamped to an inclusive horizon date, used by the
// incremental generation job.
func (d *Definition) ExpandUpTo(horizon time.Time, custom CustomMatcher) []time.Time {
	horizon = truncateToDay(horizon)
	all := d.Expand(custom)
	var dates []time.Time
	for _, date := range all {
		if date.After(horizon) {
			break
		}
		dates = append(dates, date)
	}
	return dates
}

func (d *Definition) matches(date time.Time, custom CustomMatcher) bool {
	switch d.pattern {
	case PatternDaily:
		return daysBetween(d.rangeStart, date)%d.interval == 0
	case PatternWeekly:
		if !d.weekdays.Contains(date.Weekday()) {
			return false
		}
		return weeksBetween(d.rangeStart, date)%d.interval == 0
	case PatternMonthly:
		if date.Day() != d.dayOfMonth {
			return false
		}
		return monthsBetween(d.rangeStart, date)%d.interval == 0
	case PatternCustom:
		if custom == nil {
			return true
		}
		return custom(date)
	default:
		return false
	}
}

// daysBetween counts calendar days, normalized through UTC so DST transitions
// in the definition's location cannot skew the arithmetic.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}

// weeksBetween counts whole ISO weeks between the weeks containing the two
// dates, so "every N weeks" is anchored to the week of rangeStart rather than
// to rangeStart itself.
func weeksBetween(from, to time.Time) int {
	return daysBetween(startOfISOWeek(from), startOfISOWeek(to)) / 7
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func startOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return truncateToDay(t).AddDate(0, 0, -(weekday - 1))
}
