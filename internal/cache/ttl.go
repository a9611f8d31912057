package cache

import (
	"fmt"
	"strconv"
	"time"
)

// MaxTTLSeconds is the longest accepted TTL (7 days).
const MaxTTLSeconds = 604800

// ErrInvalidTTL is returned by ParseTTL for out of range values.
var ErrInvalidTTL = fmt.Errorf("TTL must be between 0 and %d seconds", MaxTTLSeconds)

// ParseTTL parses a TTL given either as integer seconds ("300") or as a
// duration ("5m", "1h30m"). Zero disables caching of new entries.
func ParseTTL(s string) (int, error) {
	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", durErr)
		}
		seconds = int(d.Seconds())
	}

	if seconds < 0 || seconds > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return seconds, nil
}
