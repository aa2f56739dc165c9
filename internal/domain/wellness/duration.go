package wellness

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var units = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
}

// ParseDuration reads durations written for people ("10 min", "1 hr") and
// falls back to Go duration syntax ("90s").
func ParseDuration(s string) (time.Duration, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) == 2 {
		n, err := strconv.ParseFloat(fields[0], 64)
		unit, ok := units[fields[1]]
		if err == nil && ok && n >= 0 {
			return time.Duration(n * float64(unit)), nil
		}
	}
	if len(fields) == 1 {
		if d, err := time.ParseDuration(fields[0]); err == nil && d >= 0 {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
}
