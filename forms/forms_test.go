package forms

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrohavay/medforms/datefield"
)

func clockAt(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.UTC) }
}

func builtinSpec(t *testing.T, name string) *FormSpec {
	t.Helper()
	c, err := Builtin()
	require.NoError(t, err)
	spec := c.Get(name)
	require.NotNil(t, spec, name)
	return spec
}

func TestBuiltinCatalog(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, []string{"lab_report", "prescription", "scan_report"}, c.Names())

	p := c.Get("prescription")
	require.NotNil(t, p)
	assert.Equal(t, "nextReviewDate", p.DateField)
	assert.True(t, p.NotBeforeToday)
	assert.Equal(t, WireUnixMillis, p.WireFormat)
	assert.Equal(t, "Select Scan Date", c.Get("scan_report").PickerTitle)

	name, ok := c.Suggest("prescripton")
	require.True(t, ok)
	assert.Equal(t, "prescription", name)
	_, ok = c.Suggest("discharge_summary")
	assert.False(t, ok)
}

func TestNewCatalogFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vaccination.yaml"), []byte(`
vaccination:
  label: Vaccination
  dateField: administeredOn
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	c, err := NewCatalog(dir)
	require.NoError(t, err)
	spec := c.Get("vaccination")
	require.NotNil(t, spec)
	assert.Equal(t, "vaccination", spec.Name)
	assert.Equal(t, WireISO, spec.WireFormat)
	assert.Equal(t, "date", spec.DateLabel)
	assert.Equal(t, dir, c.Path)
}

func TestNewCatalogRejectsBadDefinitions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("x:\n  dateField: d\n  wireFormat: epoch\n"), 0o644))
	_, err := NewCatalog(dir)
	assert.ErrorContains(t, err, "unknown wireFormat")

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("x:\n  dateField: d\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("x:\n  dateField: e\n"), 0o644))
	_, err = NewCatalog(dir)
	assert.ErrorContains(t, err, "duplicate form name")

	_, err = NewCatalog(t.TempDir())
	assert.Error(t, err)
}

func TestSubmitCommittedDate(t *testing.T) {
	s := NewSession(builtinSpec(t, "scan_report"), SessionClock(clockAt(2026, time.October, 19)))
	s.Field.TextChange("03/02/2025")

	sub, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, "scanDate", sub.Field)
	assert.Equal(t, "2025-03-02", sub.Value)
	assert.Equal(t, map[string]any{"scanDate": "2025-03-02"}, sub.Payload())
	assert.Equal(t, s.ID.String(), sub.SessionID)
}

func TestSubmitRejectsInvalidAndMissing(t *testing.T) {
	s := NewSession(builtinSpec(t, "lab_report"))

	s.Field.TextChange("02/30/2025")
	_, err := s.Submit()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, "Please enter a valid lab report date", verr.Message)
	assert.Equal(t, "labReportDate", verr.Field)

	s.Field.TextChange("02/3")
	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrMissingDate)
	assert.EqualError(t, err, "Please select a valid lab report date")
}

func TestPrescriptionReviewDateNotInPast(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	spec := builtinSpec(t, "prescription")
	s := NewSession(spec, SessionClock(clockAt(2026, time.October, 19)), SessionLocation(loc))

	s.Field.TextChange("10/18/2026")
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrDateInPast)
	assert.EqualError(t, err, "Review date cannot be in the past")

	s.Field.TextChange("10/19/2026")
	sub, err := s.Submit()
	require.NoError(t, err)
	want := time.Date(2026, time.October, 19, 0, 0, 0, 0, loc).UnixMilli()
	assert.Equal(t, want, sub.Value)
}

func TestSubmitAfterPickerConfirm(t *testing.T) {
	s := NewSession(builtinSpec(t, "prescription"),
		SessionClock(clockAt(2026, time.October, 19)), SessionLocation(time.UTC))
	_, err := s.Field.OpenPicker()
	require.NoError(t, err)
	_, err = s.Field.SelectYear(2027)
	require.NoError(t, err)
	_, err = s.Field.ConfirmPicker()
	require.NoError(t, err)

	sub, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, datefield.CalendarDate{Year: 2027, Month: time.October, Day: 19}, sub.Date)
	assert.Equal(t, "10/19/2027", s.Field.Draft())

	s.Reset()
	assert.Equal(t, "", s.Field.Draft())
	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestEditingExistingRecord(t *testing.T) {
	saved := datefield.CalendarDate{Year: 2024, Month: time.May, Day: 1}
	s := NewSession(builtinSpec(t, "scan_report"), EditingExisting(saved))
	assert.Equal(t, "05/01/2024", s.Field.Draft())
	sub, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", sub.Value)
}

func TestEditingRecordWithOutOfRangeYear(t *testing.T) {
	saved := datefield.CalendarDate{Year: 1850, Month: time.March, Day: 1}
	s := NewSession(builtinSpec(t, "scan_report"), EditingExisting(saved))
	assert.Equal(t, "", s.Field.Draft())
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestDefaultIsBuiltinCatalog(t *testing.T) {
	t.Setenv("MEDFORMS_CATALOG_PATH", t.TempDir())
	c := Default()
	require.NotNil(t, c)
	assert.Equal(t, []string{"lab_report", "prescription", "scan_report"}, c.Names())
	assert.Same(t, c, Default())
}
