package jwt

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeSpan is a signed offset in seconds, given either as a number or as a
// human-readable string such as "2 days", "10h" or "-30m". The zero value is unset.
type TimeSpan struct {
	seconds int64
	text    string
	isText  bool
	set     bool
}

// Seconds returns a span of n seconds
func Seconds(n int64) TimeSpan {
	return TimeSpan{seconds: n, set: true}
}

// Span returns a span parsed lazily from s. A bare numeric string counts milliseconds.
func Span(s string) TimeSpan {
	return TimeSpan{text: s, isText: true, set: true}
}

// FromDuration truncates d to whole seconds
func FromDuration(d time.Duration) TimeSpan {
	return Seconds(int64(d / time.Second))
}

// IsSet reports whether the span was given
func (t TimeSpan) IsSet() bool {
	return t.set
}

func (t TimeSpan) String() string {
	if t.isText {
		return t.text
	}
	return strconv.FormatInt(t.seconds, 10) + "s"
}

// Resolve returns the span in seconds
func (t TimeSpan) Resolve() (int64, error) {
	if !t.isText {
		return t.seconds, nil
	}
	return ParseTimeSpan(t.text)
}

const maxSpanLength = 100

var spanPattern = regexp.MustCompile(`(?i)^(-?(?:\d+)?\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`)

const (
	millisecond = 1.0
	second      = 1000 * millisecond
	minute      = 60 * second
	hour        = 60 * minute
	day         = 24 * hour
	week        = 7 * day
	year        = 365.25 * day
)

// ParseTimeSpan converts a span string to whole seconds, rounding toward
// negative infinity. Units are case-insensitive; a missing unit means milliseconds.
func ParseTimeSpan(s string) (int64, error) {
	millis, err := parseMillis(s)
	if err != nil {
		return 0, configError(fmt.Sprintf("invalid time span %q", s), err)
	}
	seconds := math.Floor(millis / second)
	if seconds < math.MinInt64 || seconds >= math.MaxInt64 {
		return 0, configError(fmt.Sprintf("invalid time span %q", s), errSpanRange)
	}
	return int64(seconds), nil
}

var errSpanRange = errors.New("out of range")

func parseMillis(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	if len(s) > maxSpanLength {
		return 0, fmt.Errorf("longer than %d characters", maxSpanLength)
	}

	m := spanPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("expected <number><unit>")
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, err
	}

	return n * unitMillis(strings.ToLower(m[2])), nil
}

func unitMillis(unit string) float64 {
	switch unit {
	case "years", "year", "yrs", "yr", "y":
		return year
	case "weeks", "week", "w":
		return week
	case "days", "day", "d":
		return day
	case "hours", "hour", "hrs", "hr", "h":
		return hour
	case "minutes", "minute", "mins", "min", "m":
		return minute
	case "seconds", "second", "secs", "sec", "s":
		return second
	default:
		return millisecond
	}
}
