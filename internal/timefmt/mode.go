package timefmt

import (
	"strconv"
	"strings"
)

// Mode is the display encoding of a time field. It never changes the value.
type Mode string

const (
	ModeSeconds Mode = "seconds"
	ModeClock   Mode = "hhmmss"
)

// DefaultEndCap is the longest default segment: ten minutes.
const DefaultEndCap = 600

// Other returns the opposite display mode.
func (m Mode) Other() Mode {
	if m == ModeClock {
		return ModeSeconds
	}
	return ModeClock
}

// Fields holds the raw start/end text as typed by the user.
type Fields struct {
	Start string
	End   string
}

// DefaultEnd is min(duration, DefaultEndCap).
func DefaultEnd(durationSec int) int {
	return min(durationSec, DefaultEndCap)
}

// ApplyMode re-encodes both fields for the given mode. Only fields in the
// other encoding are touched; text that fails to parse is left as typed.
// Empty fields get start=0 and end=DefaultEnd(duration) when the duration
// is known, and stay empty otherwise.
func ApplyMode(f Fields, mode Mode, durationSec int) Fields {
	return Fields{
		Start: convertField(f.Start, mode, durationSec, 0),
		End:   convertField(f.End, mode, durationSec, DefaultEnd(durationSec)),
	}
}

func convertField(raw string, mode Mode, durationSec, def int) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		if durationSec <= 0 {
			return raw
		}
		return Encode(def, mode)
	}
	hasColon := strings.Contains(v, ":")
	switch mode {
	case ModeClock:
		if hasColon {
			return v
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return v
		}
		return SecondsToClock(n)
	default:
		if !hasColon {
			return v
		}
		n, err := ClockToSeconds(v)
		if err != nil {
			return v
		}
		return strconv.Itoa(n)
	}
}

// Encode renders seconds in the given mode.
func Encode(seconds int, mode Mode) string {
	if mode == ModeClock {
		return SecondsToClock(seconds)
	}
	return strconv.Itoa(seconds)
}
