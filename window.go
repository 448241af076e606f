package sheetpulse

import "time"

// Focus names a reporting time window anchored at a reference day.
type Focus int

const (
	MonthToDate Focus = iota
	QuarterToDate
	YearToDate
	Rolling12Months
	AllTime
	CustomRange
)

func (f Focus) String() string {
	switch f {
	case MonthToDate:
		return "month-to-date"
	case QuarterToDate:
		return "quarter-to-date"
	case YearToDate:
		return "year-to-date"
	case Rolling12Months:
		return "rolling-12-months"
	case AllTime:
		return "all-time"
	case CustomRange:
		return "custom"
	}
	return "unknown"
}

// allTimeStart is the floor for the all-time window, early enough to
// predate any plausible sheet data.
var allTimeStart = NewDate(1970, time.January, 1)

// Windows resolves a focus into the current reporting range and its
// shadow, the same-length range immediately preceding it, used for
// period-over-period comparison.
//
// Rolling12Months shadows the 12 months before its own start rather than
// a day-count mirror, so month boundaries line up. AllTime has no
// meaningful predecessor and gets a zero shadow, which Contains nothing.
// CustomRange uses the caller-provided range as-is.
func Windows(focus Focus, today Date, custom Range) (current, shadow Range) {
	switch focus {
	case MonthToDate:
		current = NewRange(today.StartOfMonth(), today)
	case QuarterToDate:
		current = NewRange(today.StartOfQuarter(), today)
	case YearToDate:
		current = NewRange(today.StartOfYear(), today)
	case Rolling12Months:
		current = NewRange(today.AddMonth(-12).Add(1), today)
		shadow = NewRange(current.From.AddMonth(-12), current.From.Add(-1))
		return current, shadow
	case AllTime:
		return NewRange(allTimeStart, today), Range{}
	case CustomRange:
		current = custom
	default:
		current = NewRange(today.StartOfMonth(), today)
	}
	if current.IsZero() {
		return current, Range{}
	}
	// generic shadow: the same number of days, ending the day before the
	// current window starts
	span := current.Days()
	shadowTo := current.From.Add(-1)
	shadow = NewRange(shadowTo.Add(-(span - 1)), shadowTo)
	return current, shadow
}
