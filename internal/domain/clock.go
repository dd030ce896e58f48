package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day expressed as minutes since midnight.
// It carries no date component; day-wrapping windows are not supported.
type Clock int

// ParseClock parses a "HH:MM" string into a Clock.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: want HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: hour: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: minute: %w", s, err)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}

	return Clock(h*60 + m), nil
}

// MinutesToClock converts fractional minutes since midnight to a Clock,
// truncating sub-minute precision and wrapping the hour at 24.
func MinutesToClock(minutes float64) Clock {
	total := int(minutes)
	h := (total / 60) % 24
	return Clock(h*60 + total%60)
}

// Minutes returns the clock value as float minutes for schedule arithmetic.
func (c Clock) Minutes() float64 { return float64(c) }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
