// Package schedule holds the pure date arithmetic behind dose planning.
// Nothing here touches the store.
package schedule

import "time"

// DefaultIntervalDays is used when a vaccine has no recorded interval.
const DefaultIntervalDays = 30

// NextDoseDate adds intervalDays to base with calendar-correct rollover
// (Jan 20 + 30 days is Feb 19).
func NextDoseDate(base time.Time, intervalDays int) time.Time {
	return base.AddDate(0, 0, intervalDays)
}

// NextDoseAfter computes the follow-up date for an appointment-style pair of
// scheduled date and interval. ok is false when the interval is unknown (0).
func NextDoseAfter(scheduledDate time.Time, intervalDays int) (next time.Time, ok bool) {
	if intervalDays <= 0 {
		return time.Time{}, false
	}
	return NextDoseDate(scheduledDate, intervalDays), true
}

// DoseSeries expands a first-dose date into the full planned series,
// first dose included. Returns nil when doses < 1.
func DoseSeries(first time.Time, intervalDays, doses int) []time.Time {
	if doses < 1 {
		return nil
	}
	out := make([]time.Time, doses)
	for i := range out {
		out[i] = NextDoseDate(first, i*intervalDays)
	}
	return out
}
