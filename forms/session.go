package forms

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pedrohavay/medforms/datefield"
)

// Session is one visit to a form screen: the date widget plus the checks
// the screen runs before it hands the date to the backend.
type Session struct {
	ID    uuid.UUID
	Spec  *FormSpec
	Field *datefield.Field

	existing *datefield.CalendarDate
	clock    func() time.Time
	location *time.Location
	logger   *zap.Logger
}

type SessionOption func(*Session)

// EditingExisting pre-fills the date from a saved record.
func EditingExisting(d datefield.CalendarDate) SessionOption {
	return func(s *Session) { s.existing = &d }
}

func SessionClock(clock func() time.Time) SessionOption {
	return func(s *Session) { s.clock = clock }
}

func SessionLocation(loc *time.Location) SessionOption {
	return func(s *Session) {
		if loc != nil {
			s.location = loc
		}
	}
}

func SessionLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSession(spec *FormSpec, opts ...SessionOption) *Session {
	s := &Session{
		ID:       uuid.New(),
		Spec:     spec,
		clock:    time.Now,
		location: time.Local,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("form", spec.Name), zap.String("session", s.ID.String()))
	fieldOpts := []datefield.Option{
		datefield.WithClock(s.clock),
		datefield.WithLocation(s.location),
		datefield.WithLogger(s.logger),
	}
	if s.existing != nil {
		fieldOpts = append(fieldOpts, datefield.WithInitial(*s.existing))
	}
	s.Field = datefield.New(fieldOpts...)
	return s
}

// Submission is the validated date ready for the backend payload.
type Submission struct {
	SessionID string                 `json:"sessionId"`
	Form      string                 `json:"form"`
	Field     string                 `json:"field"`
	Date      datefield.CalendarDate `json:"date"`
	Value     any                    `json:"value"`
}

// Payload is the date's fragment of the request body.
func (s *Submission) Payload() map[string]any {
	return map[string]any{s.Field: s.Value}
}

// Submit resolves the date the form would send. A committed date is used
// as is; a full draft gets one more parse; anything else is rejected with
// a message for the user.
func (s *Session) Submit() (*Submission, error) {
	d, ok := s.Field.Date()
	if !ok {
		draft := s.Field.Draft()
		if len(draft) == datefield.DraftLength {
			if d, ok = datefield.ParseDate(draft); !ok {
				return nil, s.reject(ErrInvalidDate, "Please enter a valid "+s.Spec.DateLabel)
			}
		}
	}
	if !ok {
		return nil, s.reject(ErrMissingDate, "Please select a valid "+s.Spec.DateLabel)
	}
	if s.Spec.NotBeforeToday && d.Before(datefield.Today(s.clock, s.location)) {
		return nil, s.reject(ErrDateInPast, capitalize(s.Spec.DateLabel)+" cannot be in the past")
	}

	sub := &Submission{
		SessionID: s.ID.String(),
		Form:      s.Spec.Name,
		Field:     s.Spec.DateField,
		Date:      d,
	}
	switch s.Spec.WireFormat {
	case WireUnixMillis:
		sub.Value = d.UnixMilli(s.location)
	default:
		sub.Value = d.ISO()
	}
	s.logger.Info("date accepted", zap.String("field", sub.Field), zap.String("date", d.ISO()))
	return sub, nil
}

// Reset clears the screen after a successful submit.
func (s *Session) Reset() {
	s.Field.Reset()
}

func (s *Session) reject(err error, msg string) error {
	s.logger.Debug("submit blocked", zap.Error(err), zap.String("draft", s.Field.Draft()))
	return &ValidationError{Form: s.Spec.Name, Field: s.Spec.DateField, Message: msg, Err: err}
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
