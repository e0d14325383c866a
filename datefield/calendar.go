package datefield

import (
	"fmt"
	"time"
)

// MinYear is the earliest year a typed or picked date may carry.
const MinYear = 1900

// MaxYear keeps the year renderable in four digits.
const MaxYear = 9999

// CalendarDate is a date without time or zone. Month is 1-based.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate returns the date if it exists on the calendar.
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, bool) {
	d := CalendarDate{Year: year, Month: month, Day: day}
	return d, d.Valid()
}

// FromTime drops the clock part of t, keeping t's own location.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Today returns the current date as seen in loc. A nil clock means time.Now.
func Today(clock func() time.Time, loc *time.Location) CalendarDate {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return FromTime(clock().In(loc))
}

// IsLeap reports whether year has a February 29.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// Valid reports whether the date exists: month 1-12 and day within the month.
func (d CalendarDate) Valid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// InRange reports whether d is valid and its year lies in MinYear..MaxYear,
// the dates a MM/DD/YYYY draft can carry.
func (d CalendarDate) InRange() bool {
	return d.Valid() && d.Year >= MinYear && d.Year <= MaxYear
}

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool { return d == CalendarDate{} }

// Time returns midnight of d in loc (UTC when loc is nil).
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// UnixMilli is the millisecond timestamp of midnight in loc.
func (d CalendarDate) UnixMilli(loc *time.Location) int64 { return d.Time(loc).UnixMilli() }

// ISO renders the date as YYYY-MM-DD.
func (d CalendarDate) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d == o }

// String renders the canonical MM/DD/YYYY form.
func (d CalendarDate) String() string { return FormatDate(d) }

// MarshalText encodes the date as YYYY-MM-DD for JSON and YAML.
func (d CalendarDate) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.ISO()), nil
}

func (d *CalendarDate) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = CalendarDate{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, string(b))
	if err != nil {
		return fmt.Errorf("invalid calendar date %q: %w", string(b), err)
	}
	*d = FromTime(t)
	return nil
}

// clampDay moves day down to the last day of (year, month) when it does not exist there.
func clampDay(year int, month time.Month, day int) int {
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
