package codec

import (
	"time"

	rowskema "github.com/reoring/rowskema"
)

// UnixMillis returns a codec that converts between int64 epoch milliseconds
// and time.Time. Decoded times are in UTC.
func UnixMillis() rowskema.Codec[time.Time] {
	return Convert(rowskema.Int64(), "time:unix_millis",
		func(ms int64) (time.Time, error) { return time.UnixMilli(ms).UTC(), nil },
		func(t time.Time) (int64, error) { return t.UnixMilli(), nil },
	)
}

// TimeRFC3339 returns a codec that converts between RFC3339 text and time.Time.
func TimeRFC3339() rowskema.Codec[time.Time] {
	return Convert(rowskema.Text(), "time:rfc3339", parseRFC3339,
		func(t time.Time) (string, error) { return formatRFC3339Canonical(t), nil },
	)
}

// LocalTime returns a codec for wall-clock times without a date, written as
// "15:04:05" with a fractional part only when nonzero, and read from
// "15:04:05", "15:04:05.999999999" or "15:04". The decoded time.Time carries
// the zero date in UTC.
func LocalTime() rowskema.Codec[time.Time] {
	return Convert(rowskema.Text(), "time:local", parseLocalTime,
		func(t time.Time) (string, error) { return t.Format(localLayoutFraction), nil },
	)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, rowskema.NewIssue(rowskema.CodeInvalidFormat, map[string]any{"want": "RFC3339", "got": s}, err)
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}

const localLayoutFraction = "15:04:05.999999999"

var localLayouts = []string{time.TimeOnly, localLayoutFraction, "15:04"}

func parseLocalTime(s string) (time.Time, error) {
	var first error
	for _, layout := range localLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if first == nil {
			first = err
		}
	}
	return time.Time{}, rowskema.NewIssue(rowskema.CodeInvalidFormat, map[string]any{"want": "hh:mm[:ss]", "got": s}, first)
}
