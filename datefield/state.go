package datefield

// Kind tags which variant a State holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindInvalid
	KindCommitted
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInvalid:
		return "invalid"
	case KindCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// State is the text side of the widget: Empty, Invalid(text) or
// Committed(date, text). A committed state always carries FormatDate(date)
// as its text.
type State struct {
	kind Kind
	text string
	date CalendarDate
}

func Empty() State { return State{kind: KindEmpty} }

// Invalid holds a draft that does not denote a date (yet). An empty draft
// collapses to Empty.
func Invalid(text string) State {
	if text == "" {
		return Empty()
	}
	return State{kind: KindInvalid, text: text}
}

// Committed holds a valid date together with its canonical draft.
func Committed(d CalendarDate) State {
	return State{kind: KindCommitted, text: FormatDate(d), date: d}
}

// FromDraft classifies an already masked draft.
func FromDraft(draft string) State {
	if len(draft) == DraftLength {
		if d, ok := ParseDate(draft); ok {
			return State{kind: KindCommitted, text: draft, date: d}
		}
	}
	return Invalid(draft)
}

func (s State) Kind() Kind { return s.kind }

// Text is the current draft; empty for Empty.
func (s State) Text() string { return s.text }

// Date returns the committed date, or false when there is none.
func (s State) Date() (CalendarDate, bool) {
	if s.kind != KindCommitted {
		return CalendarDate{}, false
	}
	return s.date, true
}

// IsCommitted reports whether the host may submit without a final parse.
func (s State) IsCommitted() bool { return s.kind == KindCommitted }

// TextChange applies one edit of the text input to s.
func (s State) TextChange(raw string) State {
	return FromDraft(maskEdit(s.text, raw))
}
