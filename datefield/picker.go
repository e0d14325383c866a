package datefield

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrPickerClosed    = errors.New("date picker is not open")
	ErrPickerOpen      = errors.New("date picker is already open")
	ErrMonthOutOfRange = errors.New("month index out of range")
	ErrDayOutOfRange   = errors.New("day out of range for selected month")
	ErrYearOutOfRange  = errors.New("year out of range")
)

// yearsBefore and yearsAfter size the year column around the selection.
const (
	yearsBefore = 5
	yearsAfter  = 4
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// PickerSession is the transient month/day/year selection of an open picker.
// Every mutation leaves Selection a valid date.
type PickerSession struct {
	Selection CalendarDate `json:"selection" yaml:"selection" msgpack:"selection"`
}

// OpenPicker starts a session on committed, or on today when there is no
// committed date.
func OpenPicker(committed CalendarDate, ok bool, today CalendarDate) *PickerSession {
	if !ok {
		committed = today
	}
	return &PickerSession{Selection: committed}
}

// SelectMonth sets the 0-based month, clamping the day to the month's end.
func (p *PickerSession) SelectMonth(index int) (CalendarDate, error) {
	if index < 0 || index > 11 {
		return p.Selection, fmt.Errorf("%w: %d", ErrMonthOutOfRange, index)
	}
	sel := p.Selection
	sel.Month = time.Month(index + 1)
	sel.Day = clampDay(sel.Year, sel.Month, sel.Day)
	p.Selection = sel
	return sel, nil
}

// SelectDay sets the day; only days the current month has are accepted.
func (p *PickerSession) SelectDay(day int) (CalendarDate, error) {
	if day < 1 || day > DaysInMonth(p.Selection.Year, p.Selection.Month) {
		return p.Selection, fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	p.Selection.Day = day
	return p.Selection, nil
}

// SelectYear sets the year, clamping Feb 29 to Feb 28 in common years.
func (p *PickerSession) SelectYear(year int) (CalendarDate, error) {
	if year < MinYear || year > MaxYear {
		return p.Selection, fmt.Errorf("%w: %d", ErrYearOutOfRange, year)
	}
	sel := p.Selection
	sel.Year = year
	sel.Day = clampDay(sel.Year, sel.Month, sel.Day)
	p.Selection = sel
	return sel, nil
}

// Months lists the month column, January first.
func (p *PickerSession) Months() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames)
	return out
}

// Days lists the day column for the selected month.
func (p *PickerSession) Days() []int {
	n := DaysInMonth(p.Selection.Year, p.Selection.Month)
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Years lists the year column: five years before the selection through
// four after, trimmed to the accepted range.
func (p *PickerSession) Years() []int {
	out := make([]int, 0, yearsBefore+yearsAfter+1)
	for y := p.Selection.Year - yearsBefore; y <= p.Selection.Year+yearsAfter; y++ {
		if y < MinYear || y > MaxYear {
			continue
		}
		out = append(out, y)
	}
	return out
}

// Clone copies the session; nil stays nil.
func (p *PickerSession) Clone() *PickerSession {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
