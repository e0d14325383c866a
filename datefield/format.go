package datefield

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DraftLength is the length of a fully typed MM/DD/YYYY draft.
const DraftLength = 10

const maxDigits = 8

var nonDraftChars = regexp.MustCompile(`[^0-9/]`)

// Mask turns raw keyboard input into the MM/DD/YYYY draft shape.
// Anything but digits is dropped, typed slashes included; separators are
// re-inserted after the 2nd and 4th digit. At most 8 digits are kept.
func Mask(raw string) string {
	s := nonDraftChars.ReplaceAllString(raw, "")
	digits := strings.ReplaceAll(s, "/", "")
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}
	var b strings.Builder
	b.Grow(DraftLength)
	for i := 0; i < len(digits); i++ {
		b.WriteByte(digits[i])
		if i == 1 || i == 3 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

// maskEdit masks raw as the successor of prev. A shrinking edit that would
// get its trailing separator re-appended keeps it removed, so backspace over
// a slash works. This is the only place the result depends on prev: pasting
// "0715" over a longer draft gives "07/15" where Mask gives "07/15/". Both
// forms hold the same digits and neither commits.
func maskEdit(prev, raw string) string {
	out := Mask(raw)
	if len(raw) < len(prev) && strings.HasSuffix(out, "/") && !strings.HasSuffix(raw, "/") {
		out = out[:len(out)-1]
	}
	return out
}

// ParseDate reads a full MM/DD/YYYY draft. It fails on a wrong shape (two
// digit month and day, four digit year), a
// month outside 1-12, a day outside 1-31, a year before 1900, or a day the
// month does not have (04/31 does not roll over into May).
func ParseDate(text string) (CalendarDate, bool) {
	if len(text) != DraftLength {
		return CalendarDate{}, false
	}
	parts := strings.Split(text, "/")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return CalendarDate{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if p == "" || strings.Trim(p, "0123456789") != "" {
			return CalendarDate{}, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return CalendarDate{}, false
		}
		nums[i] = n
	}
	month, day, year := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 || year < MinYear {
		return CalendarDate{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return CalendarDate{}, false
	}
	return FromTime(t), true
}

// FormatDate renders d as zero-padded MM/DD/YYYY.
func FormatDate(d CalendarDate) string {
	return fmt.Sprintf("%02d/%02d/%04d", int(d.Month), d.Day, d.Year)
}
