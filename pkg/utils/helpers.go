package utils

import (
	"strings"
	"time"
)

// ParseDuration safely parses a duration string like "30s", returning def
// when the value is empty or malformed.
func ParseDuration(d string, def time.Duration) time.Duration {
	d = strings.TrimSpace(d)
	if d == "" {
		return def
	}
	duration, err := time.ParseDuration(d)
	if err != nil || duration <= 0 {
		return def
	}
	return duration
}

// ClampInt bounds v to [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// DefaultInt returns def when v is zero or negative.
func DefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
