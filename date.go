package sheetpulse

import (
	"encoding/json"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// AddMonth returns a new Date with the given number of months added.
func (d Date) AddMonth(i int) Date { return NewDate(d.y, d.m+time.Month(i), d.d) }

// StartOfMonth returns the first day of the date's month.
func (d Date) StartOfMonth() Date { return NewDate(d.y, d.m, 1) }

// StartOfQuarter returns the first day of the date's calendar quarter.
func (d Date) StartOfQuarter() Date {
	quarter := (d.m - 1) / 3
	return NewDate(d.y, time.Month(quarter*3+1), 1)
}

// StartOfYear returns January 1st of the date's year.
func (d Date) StartOfYear() Date { return NewDate(d.y, time.January, 1) }

// DaysBetween returns the number of days from d to x, inclusive of both ends.
func DaysBetween(d, x Date) int {
	return int(x.time().Sub(d.time())/(24*time.Hour)) + 1
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// UnmarshalJSON implements json.Unmarshaler. Parsing is as lenient as the
// sheet parser itself.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if on, ok := ParseFlexibleDate(str); ok {
		*d = on
	}
	// An unparseable date in a data file degrades to the zero date, it is
	// never an error, consistent with cell parsing.
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

var (
	isoDateRE = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`)
	usDateRE  = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})`)
	// e.g. "Jan-24", "Jan 2024", "September-24"
	monthYearRE = regexp.MustCompile(`^([A-Za-z]{3,9})[-/ ]'?(\d{2}|\d{4})$`)
)

var monthPrefixes = []string{"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec"}

// monthFromLabel matches a free-text cell against English month-name
// prefixes. Returns 0 when the cell is not month-like.
func monthFromLabel(cell string) time.Month {
	s := strings.ToLower(strings.TrimSpace(cell))
	for i, p := range monthPrefixes {
		if strings.HasPrefix(s, p) {
			return time.Month(i + 1)
		}
	}
	return 0
}

// genericDateLayouts are the free-text formats tried last, in order.
var genericDateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseFlexibleDate parses a user-entered date cell. It tries, in order:
// ISO-like (YYYY-MM-DD with -, / or . separators), US-like (MM-DD-YYYY),
// short-month-name plus 2-or-4-digit year ("Jan-24"), then a generic
// free-text fallback that only accepts years after 1990.
//
// It returns false on total failure; callers must treat that as "skip this
// cell", never as an error.
func ParseFlexibleDate(raw string) (Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, false
	}

	if m := isoDateRE.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if mo >= 1 && mo <= 12 && d >= 1 && d <= 31 {
			return NewDate(y, time.Month(mo), d), true
		}
	}

	if m := usDateRE.FindStringSubmatch(s); m != nil {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if mo >= 1 && mo <= 12 && d >= 1 && d <= 31 {
			return NewDate(y, time.Month(mo), d), true
		}
	}

	if m := monthYearRE.FindStringSubmatch(s); m != nil {
		if month := monthFromLabel(m[1]); month != 0 {
			y, _ := strconv.Atoi(m[2])
			if y < 100 {
				y += 2000
			}
			return NewDate(y, month, 1), true
		}
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil && t.Year() > 1990 {
			return NewDate(t.Date()), true
		}
	}
	return Date{}, false
}

// MustDate parses an ISO date string and panics on failure. Test helper.
func MustDate(str string) Date {
	d, ok := ParseFlexibleDate(str)
	if !ok {
		panic("invalid date " + str)
	}
	return d
}

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// IsZero reports whether the range is the empty zero range.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains returns true when date is included in the range (boundaries included).
// The zero range contains nothing.
func (r Range) Contains(date Date) bool {
	if r.IsZero() {
		return false
	}
	return !date.Before(r.From) && !date.After(r.To)
}

// Days returns the number of days covered by the range, inclusive.
func (r Range) Days() int {
	if r.IsZero() {
		return 0
	}
	return DaysBetween(r.From, r.To)
}

// Each returns an iterator that yields each date within the range, inclusive.
func (r Range) Each() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}
