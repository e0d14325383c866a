package datefield

import (
	"errors"
	"fmt"
)

var ErrUnknownEvent = errors.New("unknown event type")

// EventType names one user action on the widget.
type EventType string

const (
	EventText    EventType = "text"
	EventOpen    EventType = "open"
	EventMonth   EventType = "month"
	EventDay     EventType = "day"
	EventYear    EventType = "year"
	EventConfirm EventType = "confirm"
	EventCancel  EventType = "cancel"
)

// Event is one discrete UI action. Text carries the raw input of a text
// event; Value carries the month index, day or year of a picker tap.
type Event struct {
	Type  EventType `json:"type" yaml:"type" msgpack:"type"`
	Text  string    `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Value int       `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
}

func TextEvent(raw string) Event { return Event{Type: EventText, Text: raw} }
func OpenEvent() Event           { return Event{Type: EventOpen} }
func MonthEvent(index int) Event { return Event{Type: EventMonth, Value: index} }
func DayEvent(day int) Event     { return Event{Type: EventDay, Value: day} }
func YearEvent(year int) Event   { return Event{Type: EventYear, Value: year} }
func ConfirmEvent() Event        { return Event{Type: EventConfirm} }
func CancelEvent() Event         { return Event{Type: EventCancel} }

// IsPickerEvent reports whether e acts on the modal rather than the text input.
func (e Event) IsPickerEvent() bool { return e.Type != EventText }

// Snapshot is the whole widget: the text state and, while the modal is
// visible, the picker session.
type Snapshot struct {
	State  State
	Picker *PickerSession
}

// NewSnapshot starts a widget, pre-filled when initial is non-nil and
// renders as a parseable draft.
func NewSnapshot(initial *CalendarDate) Snapshot {
	if initial != nil && initial.InRange() {
		return Snapshot{State: Committed(*initial)}
	}
	return Snapshot{State: Empty()}
}

// PickerOpen reports whether the modal is visible.
func (s Snapshot) PickerOpen() bool { return s.Picker != nil }

// Reduce applies e to s. today seeds a picker opened without a committed
// date. A rejected event returns s unchanged with the error.
func Reduce(s Snapshot, e Event, today CalendarDate) (Snapshot, error) {
	if err := checkEvent(e); err != nil {
		return s, err
	}
	next := Snapshot{State: s.State, Picker: s.Picker.Clone()}
	switch e.Type {
	case EventText:
		next.State = s.State.TextChange(e.Text)
		return next, nil
	case EventOpen:
		if s.PickerOpen() {
			return s, ErrPickerOpen
		}
		d, ok := s.State.Date()
		next.Picker = OpenPicker(d, ok, today)
		return next, nil
	}

	if !s.PickerOpen() {
		return s, fmt.Errorf("%s: %w", e.Type, ErrPickerClosed)
	}
	var err error
	switch e.Type {
	case EventMonth:
		_, err = next.Picker.SelectMonth(e.Value)
	case EventDay:
		_, err = next.Picker.SelectDay(e.Value)
	case EventYear:
		_, err = next.Picker.SelectYear(e.Value)
	case EventConfirm:
		next.State = Committed(next.Picker.Selection)
		next.Picker = nil
	case EventCancel:
		next.Picker = nil
	}
	if err != nil {
		return s, err
	}
	return next, nil
}

// ReplayError points at the event a replay stopped on.
type ReplayError struct {
	Index int
	Event Event
	Err   error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("event %d (%s): %v", e.Index, e.Event.Type, e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

// Replay folds events over s, stopping at the first rejected one. The
// returned snapshot is the state before that event.
func Replay(s Snapshot, events []Event, today CalendarDate) (Snapshot, error) {
	for i, e := range events {
		next, err := Reduce(s, e, today)
		if err != nil {
			return s, &ReplayError{Index: i, Event: e, Err: err}
		}
		s = next
	}
	return s, nil
}
