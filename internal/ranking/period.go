package ranking

import (
	"fmt"
	"time"
)

// Unit is a calendar unit used to window the leaderboard. The empty unit is
// a distinct mode: no windowing, full history.
type Unit string

const (
	UnitNone    Unit = ""
	UnitWeek    Unit = "week"
	UnitMonth   Unit = "month"
	UnitQuarter Unit = "quarter"
	UnitYear    Unit = "year"
)

// ParseUnit validates a query-string unit value.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitNone, UnitWeek, UnitMonth, UnitQuarter, UnitYear:
		return Unit(s), nil
	}
	return UnitNone, fmt.Errorf("unsupported unit %q", s)
}

// ResolvePeriod computes the inclusive start and end of the calendar period
// containing now, in the given location. Weeks start on Sunday. UnitNone
// yields an unbounded window.
func ResolvePeriod(unit Unit, now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	var start, next time.Time
	switch unit {
	case UnitWeek:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		start = day.AddDate(0, 0, -int(now.Weekday()))
		next = start.AddDate(0, 0, 7)
	case UnitMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		next = start.AddDate(0, 1, 0)
	case UnitQuarter:
		// First month of the current quarter, via month arithmetic.
		qm := time.Month((int(now.Month())-1)/3*3 + 1)
		start = time.Date(now.Year(), qm, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(0, 3, 0)
	case UnitYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(1, 0, 0)
	default:
		return Window{}
	}

	return Window{
		Start:   start,
		End:     next.Add(-time.Nanosecond),
		Bounded: true,
	}
}
