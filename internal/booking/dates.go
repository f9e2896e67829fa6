// Package booking implements the availability and reservation engine:
// calendar-day occupancy, nightly pricing, conflict-free reservation
// creation and the owner block/unblock workflow.  All dates handled by
// this package are calendar dates without a time-of-day component,
// normalized to midnight UTC.  Every range is half-open: the check-out
// date is exclusive, so a one-night stay runs [d, d+1).
package booking

import (
	"sort"
	"time"
)

// DateLayout is the wire format for calendar dates in every request
// and response that carries one.
const DateLayout = "2006-01-02"

// Day normalizes an arbitrary timestamp to its calendar date at
// midnight UTC.  All comparisons inside the engine operate on
// normalized days so that wall-clock components never influence
// overlap or pricing decisions.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// FormatDate renders a normalized day back to YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.UTC().Format(DateLayout) }

// NextDay returns the day immediately after d.  AddDate is used
// instead of adding 24 hours so the arithmetic stays correct across
// daylight-saving transitions in non-UTC inputs.
func NextDay(d time.Time) time.Time { return Day(d).AddDate(0, 0, 1) }

// ExpandRange expands the half-open range [checkIn, checkOut) into
// its individual nights by repeated day increment.  An empty or
// inverted range yields no days.
func ExpandRange(checkIn, checkOut time.Time) []time.Time {
	from, to := Day(checkIn), Day(checkOut)
	var days []time.Time
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Overlaps reports whether the half-open ranges [aIn, aOut) and
// [bIn, bOut) share at least one night.  This is the classic
// interval intersection test: a starts before b ends and b starts
// before a ends.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return Day(aIn).Before(Day(bOut)) && Day(bIn).Before(Day(aOut))
}

// isWeekendNight reports whether the night starting on d is priced
// at the weekend rate.  Friday and Saturday are the operative
// weekend in this market.
func isWeekendNight(d time.Time) bool {
	wd := Day(d).Weekday()
	return wd == time.Friday || wd == time.Saturday
}

// DateSet is a set of normalized calendar days.  The zero value is
// not usable; construct with NewDateSet.
type DateSet map[time.Time]struct{}

// NewDateSet returns a set seeded with the given days, normalizing
// each one.
func NewDateSet(days ...time.Time) DateSet {
	s := make(DateSet, len(days))
	for _, d := range days {
		s.Add(d)
	}
	return s
}

// Add inserts a day into the set.
func (s DateSet) Add(d time.Time) { s[Day(d)] = struct{}{} }

// Has reports whether the set contains the given day.
func (s DateSet) Has(d time.Time) bool {
	_, ok := s[Day(d)]
	return ok
}

// Len returns the number of days in the set.
func (s DateSet) Len() int { return len(s) }

// Sorted returns the set's days in ascending order.  Handlers use
// this to render deterministic calendar responses.
func (s DateSet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Strings returns the set's days as sorted YYYY-MM-DD strings.
func (s DateSet) Strings() []string {
	days := s.Sorted()
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, FormatDate(d))
	}
	return out
}
