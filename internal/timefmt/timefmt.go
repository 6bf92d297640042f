// Package timefmt converts between plain second counts and HH:MM:SS text
// and keeps the two display encodings of a time range in sync.
package timefmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotANumber is returned when a time field cannot be read as seconds.
var ErrNotANumber = errors.New("not a number")

// SecondsToClock renders seconds as HH:MM:SS. Every field is padded to at
// least two digits; hours are never truncated. Negative input yields "".
func SecondsToClock(seconds int) string {
	if seconds < 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ClockToSeconds parses "SS", "MM:SS" or "HH:MM:SS". Components are not
// normalized, so "90:00" is 5400 seconds. Any non-negative int survives a
// round trip through SecondsToClock; totals past the int range are rejected.
func ClockToSeconds(text string) (int, error) {
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}
	weights := []int{3600, 60, 1}[3-len(parts):]
	total := 0
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, strconv.IntSize-1)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
		}
		n := int(v)
		if n > (math.MaxInt-total)/weights[i] {
			return 0, fmt.Errorf("%w: %q out of range", ErrNotANumber, text)
		}
		total += n * weights[i]
	}
	return total, nil
}

// FormatDuration renders a duration for display: MM:SS below an hour,
// HH:MM:SS otherwise, "N/A" for negative values.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return "N/A"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
