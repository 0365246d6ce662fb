package xero

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// wrappedDatePattern matches the .NET-style date wrapper Xero uses on some
// endpoints: /Date(1439434356790)/ or /Date(1439434356790+1300)/.
var wrappedDatePattern = regexp.MustCompile(`^\\?/Date\((-?\d+)([+-]\d{4})?\)\\?/$`)

// ParseWrappedDate parses a /Date(ms[±HHMM])/ value into a time.Time.
// The millisecond payload is Unix epoch UTC; the optional ±HHMM suffix is the
// tenant's local offset and is applied so that the calendar date matches what
// the Xero UI shows.
func ParseWrappedDate(s string) (time.Time, error) {
	m := wrappedDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("not a wrapped date value: %q", s)
	}

	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid millisecond payload in %q: %w", s, err)
	}

	t := time.UnixMilli(ms).UTC()

	if m[2] != "" {
		sign := 1
		if m[2][0] == '-' {
			sign = -1
		}
		hours, err := strconv.Atoi(m[2][1:3])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid offset in %q: %w", s, err)
		}
		minutes, err := strconv.Atoi(m[2][3:5])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid offset in %q: %w", s, err)
		}
		t = t.Add(time.Duration(sign) * (time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute))
	}

	return t, nil
}

// ParseDate parses any date representation the Xero API produces into a plain
// YYYY-MM-DD calendar date string. It accepts the wrapped epoch form, the
// DateString ISO form (2006-01-02T15:04:05) and a bare calendar date.
func ParseDate(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty date value")
	}

	if t, err := ParseWrappedDate(s); err == nil {
		return t.Format("2006-01-02"), nil
	}

	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("unrecognized date value: %q", s)
}

// DateOf returns the first parseable calendar date among the given values.
// Transactions carry both DateString and the wrapped Date; either may be
// absent depending on the endpoint.
func DateOf(values ...string) (string, error) {
	for _, v := range values {
		if v == "" {
			continue
		}
		if d, err := ParseDate(v); err == nil {
			return d, nil
		}
	}
	return "", fmt.Errorf("no parseable date among %d values", len(values))
}
