package datefield

import (
	"time"

	"go.uber.org/zap"
)

// Field is one date input on a form screen: a masked text box plus a modal
// month/day/year picker kept in sync with it. A Field belongs to the
// goroutine that handles the screen's UI events; it is not safe for
// concurrent use.
type Field struct {
	snap     Snapshot
	clock    func() time.Time
	location *time.Location
	logger   *zap.Logger

	onChange  func(State)
	onConfirm func(CalendarDate, string)
	onCancel  func()
}

type Option func(*Field)

// WithInitial pre-fills the field, e.g. when editing a saved record. A date
// outside MinYear..MaxYear leaves the field empty.
func WithInitial(d CalendarDate) Option {
	return func(f *Field) {
		if d.InRange() {
			f.snap.State = Committed(d)
		}
	}
}

// WithClock replaces time.Now as the source of "today".
func WithClock(clock func() time.Time) Option {
	return func(f *Field) { f.clock = clock }
}

// WithLocation sets the zone "today" is computed in.
func WithLocation(loc *time.Location) Option {
	return func(f *Field) { f.location = loc }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.logger = l
		}
	}
}

// OnChange is called after every text edit with the new state.
func OnChange(fn func(State)) Option {
	return func(f *Field) { f.onChange = fn }
}

// OnConfirm is called with the chosen date and its MM/DD/YYYY rendering
// when the picker is confirmed.
func OnConfirm(fn func(CalendarDate, string)) Option {
	return func(f *Field) { f.onConfirm = fn }
}

// OnCancel is called when the picker is dismissed without a choice.
func OnCancel(fn func()) Option {
	return func(f *Field) { f.onCancel = fn }
}

func New(opts ...Option) *Field {
	f := &Field{
		snap:     Snapshot{State: Empty()},
		clock:    time.Now,
		location: time.Local,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Field) State() State { return f.snap.State }

// Snapshot returns a copy of the whole widget state.
func (f *Field) Snapshot() Snapshot {
	return Snapshot{State: f.snap.State, Picker: f.snap.Picker.Clone()}
}

// Draft is the text currently shown in the input.
func (f *Field) Draft() string { return f.snap.State.Text() }

// Date returns the committed date, if any.
func (f *Field) Date() (CalendarDate, bool) { return f.snap.State.Date() }

// PickerOpen reports whether the modal is visible.
func (f *Field) PickerOpen() bool { return f.snap.PickerOpen() }

// Selection is the picker's in-progress date while it is open.
func (f *Field) Selection() (CalendarDate, bool) {
	if f.snap.Picker == nil {
		return CalendarDate{}, false
	}
	return f.snap.Picker.Selection, true
}

// Picker exposes a copy of the open picker session for rendering its columns.
func (f *Field) Picker() (*PickerSession, bool) {
	if f.snap.Picker == nil {
		return nil, false
	}
	return f.snap.Picker.Clone(), true
}

func (f *Field) Today() CalendarDate { return Today(f.clock, f.location) }

// TextChange handles a keystroke or paste in the text input.
func (f *Field) TextChange(raw string) State {
	f.snap.State = f.snap.State.TextChange(raw)
	if f.snap.State.Kind() == KindInvalid && len(f.snap.State.Text()) == DraftLength {
		f.logger.Debug("invalid date", zap.String("draft", f.snap.State.Text()))
	}
	if f.onChange != nil {
		f.onChange(f.snap.State)
	}
	return f.snap.State
}

// OpenPicker shows the modal, seeded with the committed date or today.
func (f *Field) OpenPicker() (CalendarDate, error) {
	if err := f.apply(OpenEvent()); err != nil {
		return CalendarDate{}, err
	}
	sel := f.snap.Picker.Selection
	f.logger.Debug("date picker opened", zap.String("selection", sel.ISO()))
	return sel, nil
}

// SelectMonth picks a 0-based month in the open picker.
func (f *Field) SelectMonth(index int) (CalendarDate, error) {
	return f.pick(MonthEvent(index))
}

// SelectDay picks a day of the selected month in the open picker.
func (f *Field) SelectDay(day int) (CalendarDate, error) {
	return f.pick(DayEvent(day))
}

// SelectYear picks a year in the open picker.
func (f *Field) SelectYear(year int) (CalendarDate, error) {
	return f.pick(YearEvent(year))
}

// ConfirmPicker commits the selection, rewrites the draft to match and
// closes the modal.
func (f *Field) ConfirmPicker() (CalendarDate, error) {
	if err := f.apply(ConfirmEvent()); err != nil {
		return CalendarDate{}, err
	}
	d, _ := f.snap.State.Date()
	f.logger.Debug("date picker confirmed", zap.String("date", d.ISO()))
	if f.onConfirm != nil {
		f.onConfirm(d, f.snap.State.Text())
	}
	return d, nil
}

// CancelPicker closes the modal and drops the selection; the text state is
// left as it was.
func (f *Field) CancelPicker() error {
	if err := f.apply(CancelEvent()); err != nil {
		return err
	}
	f.logger.Debug("date picker cancelled")
	if f.onCancel != nil {
		f.onCancel()
	}
	return nil
}

// Apply dispatches a recorded event to the matching operation, so replays
// fire the same callbacks as live input.
func (f *Field) Apply(e Event) error {
	var err error
	switch e.Type {
	case EventText:
		f.TextChange(e.Text)
	case EventOpen:
		_, err = f.OpenPicker()
	case EventMonth:
		_, err = f.SelectMonth(e.Value)
	case EventDay:
		_, err = f.SelectDay(e.Value)
	case EventYear:
		_, err = f.SelectYear(e.Value)
	case EventConfirm:
		_, err = f.ConfirmPicker()
	case EventCancel:
		err = f.CancelPicker()
	default:
		err = checkEvent(e)
	}
	return err
}

// Reset clears the field back to Empty and closes the picker.
func (f *Field) Reset() {
	f.snap = Snapshot{State: Empty()}
}

func (f *Field) pick(e Event) (CalendarDate, error) {
	if err := f.apply(e); err != nil {
		return CalendarDate{}, err
	}
	return f.snap.Picker.Selection, nil
}

func (f *Field) apply(e Event) error {
	next, err := Reduce(f.snap, e, f.Today())
	if err != nil {
		f.logger.Debug("event rejected", zap.String("type", string(e.Type)), zap.Error(err))
		return err
	}
	f.snap = next
	return nil
}

// View is a flat rendering of a snapshot for logs and JSON output.
type View struct {
	Kind       string        `json:"kind"`
	Draft      string        `json:"draft"`
	Date       *CalendarDate `json:"date,omitempty"`
	PickerOpen bool          `json:"pickerOpen"`
	Selection  *CalendarDate `json:"selection,omitempty"`
	Days       []int         `json:"days,omitempty"`
	Years      []int         `json:"years,omitempty"`
}

func (s Snapshot) View() View {
	v := View{Kind: s.State.Kind().String(), Draft: s.State.Text(), PickerOpen: s.PickerOpen()}
	if d, ok := s.State.Date(); ok {
		v.Date = &d
	}
	if s.Picker != nil {
		sel := s.Picker.Selection
		v.Selection = &sel
		v.Days = s.Picker.Days()
		v.Years = s.Picker.Years()
	}
	return v
}
