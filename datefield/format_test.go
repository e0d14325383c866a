package datefield

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskInsertsSeparatorsByDigitPosition(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"0":             "0",
		"07":            "07/",
		"071":           "07/1",
		"0715":          "07/15/",
		"07152":         "07/15/2",
		"07152025":      "07/15/2025",
		"0715202512":    "07/15/2025",
		"07/15/2025":    "07/15/2025",
		"07//1/5":       "07/15/",
		"a0b7-15.2025x": "07/15/2025",
		"٠٧":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Mask(in), "Mask(%q)", in)
	}
}

func TestMaskKeepsDigitOrder(t *testing.T) {
	digits := "12345678"
	for n := 0; n <= len(digits); n++ {
		in := digits[:n]
		out := Mask(in)
		assert.Equal(t, in, strings.ReplaceAll(out, "/", ""))
		assert.Equal(t, out, Mask(out), "mask is idempotent")
		assert.LessOrEqual(t, len(out), DraftLength)
	}
}

func TestMaskEditLetsBackspaceRemoveSeparator(t *testing.T) {
	assert.Equal(t, "07", maskEdit("07/", "07"))
	assert.Equal(t, "07/15", maskEdit("07/15/", "07/15"))
	assert.Equal(t, "07/", maskEdit("07/1", "07/"))
	assert.Equal(t, "07/", maskEdit("07", "07/"))
	assert.Equal(t, "07/3", maskEdit("07", "073"))
}

func TestMaskEditShorterPasteKeepsDigits(t *testing.T) {
	assert.Equal(t, "07/15", maskEdit("03/01/2025", "0715"))
	assert.Equal(t, "07/15/", Mask("0715"))
	assert.Equal(t, "07/15/2", maskEdit("03/01/2025", "07152"))

	s := Committed(CalendarDate{Year: 2025, Month: time.March, Day: 1}).TextChange("0715")
	assert.Equal(t, KindInvalid, s.Kind())
	assert.Equal(t, "07/15", s.Text())
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("07/15/2025")
	require.True(t, ok)
	assert.Equal(t, CalendarDate{Year: 2025, Month: time.July, Day: 15}, d)

	d, ok = ParseDate("02/29/2024")
	require.True(t, ok)
	assert.Equal(t, 29, d.Day)

	d, ok = ParseDate("01/01/1900")
	require.True(t, ok)
	assert.Equal(t, CalendarDate{Year: 1900, Month: time.January, Day: 1}, d)
}

func TestParseDateRejects(t *testing.T) {
	for _, in := range []string{
		"02/30/2025", // no Feb 30
		"02/29/2025", // not a leap year
		"04/31/2025", // April has 30 days
		"13/01/2025",
		"00/10/2025",
		"01/32/2025",
		"01/00/2025",
		"01/01/1899",
		"01/01/202",
		"1/01/20255",
		"7/015/2025",
		"01-01-2025",
		"0a/01/2025",
		"+1/01/2025",
		"",
	} {
		_, ok := ParseDate(in)
		assert.False(t, ok, "ParseDate(%q)", in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "03/05/2024", FormatDate(CalendarDate{Year: 2024, Month: time.March, Day: 5}))
	assert.Equal(t, "12/31/1900", FormatDate(CalendarDate{Year: 1900, Month: time.December, Day: 31}))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, year := range []int{1900, 1999, 2000, 2023, 2024, 2100} {
		for m := time.January; m <= time.December; m++ {
			for day := 1; day <= DaysInMonth(year, m); day++ {
				d := CalendarDate{Year: year, Month: m, Day: day}
				got, ok := ParseDate(FormatDate(d))
				require.True(t, ok, "%s", FormatDate(d))
				require.Equal(t, d, got)
			}
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 28, DaysInMonth(1900, time.February))
	assert.Equal(t, 29, DaysInMonth(2000, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
}

func TestCalendarDateText(t *testing.T) {
	d := CalendarDate{Year: 2025, Month: time.July, Day: 4}
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-07-04", string(b))

	var back CalendarDate
	require.NoError(t, back.UnmarshalText(b))
	assert.Equal(t, d, back)
	assert.Error(t, back.UnmarshalText([]byte("2025-02-30")))
}

func TestCalendarDateCompare(t *testing.T) {
	a := CalendarDate{Year: 2025, Month: time.March, Day: 31}
	b := CalendarDate{Year: 2025, Month: time.April, Day: 1}
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, int64(1743379200000), a.UnixMilli(time.UTC))
}
