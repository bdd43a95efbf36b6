package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// MinimumTimestamp separates elapsed offsets from Unix timestamps.  Numeric times up to this many
// seconds (approx. 1990) are interpreted as elapsed durations, larger ones as timestamps.
const MinimumTimestamp float64 = 650000000

// TimeKind identifies which variant of Time is set
type TimeKind int

const (
	NoTime TimeKind = iota
	ElapsedTime
	AbsoluteTime
)

func (k TimeKind) String() string {
	switch k {
	case ElapsedTime:
		return "elapsed"
	case AbsoluteTime:
		return "absolute"
	default:
		return "none"
	}
}

// Time is the optional time of a measurement: absent, an elapsed duration from an arbitrary
// origin, or an absolute timestamp.  The zero value is absent.
type Time struct {
	kind    TimeKind
	elapsed time.Duration
	at      time.Time
}

// None returns an absent time
func None() Time {
	return Time{}
}

// Elapsed returns a time that is an offset from an arbitrary origin
func Elapsed(d time.Duration) Time {
	return Time{kind: ElapsedTime, elapsed: d}
}

// At returns an absolute timestamp
func At(t time.Time) Time {
	return Time{kind: AbsoluteTime, at: t}
}

// Kind returns the variant of this time
func (t Time) Kind() TimeKind {
	return t.kind
}

// IsSet reports whether the time carries any information
func (t Time) IsSet() bool {
	return t.kind != NoTime
}

// Duration returns the elapsed duration, zero unless the kind is ElapsedTime
func (t Time) Duration() time.Duration {
	return t.elapsed
}

// Timestamp returns the absolute time, the zero time.Time unless the kind is AbsoluteTime
func (t Time) Timestamp() time.Time {
	return t.at
}

// Seconds returns elapsed seconds, or Unix seconds for absolute times
func (t Time) Seconds() float64 {
	switch t.kind {
	case ElapsedTime:
		return t.elapsed.Seconds()
	case AbsoluteTime:
		return float64(t.at.UnixNano()) / float64(time.Second)
	default:
		return 0.0
	}
}

func (t Time) String() string {
	switch t.kind {
	case ElapsedTime:
		return t.elapsed.String()
	case AbsoluteTime:
		return t.at.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// FromSeconds interprets a numeric time.  Values above MinimumTimestamp are Unix timestamps (UTC),
// everything else is an elapsed duration in seconds.
func FromSeconds(s float64) Time {
	if s > MinimumTimestamp {
		sec, frac := math.Modf(s)
		return At(time.Unix(int64(sec), int64(frac*1e9)).UTC())
	}
	return Elapsed(time.Duration(s * float64(time.Second)))
}

// ParseTime parses a time string, first as a number of seconds and then as a calendar date/time.
// Calendar strings without a zone are taken as UTC.  An empty string is an absent time.
func ParseTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None(), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FromSeconds(f), nil
	}
	at, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return None(), TimeError{Msg: fmt.Sprintf("unable to convert %q to a valid time: %v", s, err)}
	}
	return At(at), nil
}

// NewTime converts a dynamically typed time value supplied by a collaborator.
func NewTime(v interface{}) (Time, error) {
	switch t := v.(type) {
	case nil:
		return None(), nil
	case Time:
		return t, nil
	case time.Time:
		return At(t), nil
	case time.Duration:
		return Elapsed(t), nil
	case float64:
		return FromSeconds(t), nil
	case float32:
		return FromSeconds(float64(t)), nil
	case int:
		return FromSeconds(float64(t)), nil
	case int64:
		return FromSeconds(float64(t)), nil
	case string:
		return ParseTime(t)
	default:
		return None(), TimeError{Msg: fmt.Sprintf("unable to convert %v of type %T to a valid time", v, v)}
	}
}
