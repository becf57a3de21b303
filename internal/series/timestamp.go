package series

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"DominanceSentinel/internal/model"
)

// ParseTimestamp accepts an RFC 3339 timestamp, a bare YYYY-MM-DD date or epoch milliseconds.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", model.ErrInvalidInputData)
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised timestamp %q", model.ErrInvalidInputData, s)
}
