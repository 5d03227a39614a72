package countdown

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseTarget reads a target instant from free-form text: ISO 8601,
// RFC 1123, "December 25, 2026 18:00", epoch seconds or milliseconds and
// the other layouts dateparse knows. Strings without a zone are local
// time. The zero instant and the Unix epoch are rejected.
func ParseTarget(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil || t.IsZero() || t.UnixMilli() == 0 {
		return time.Time{}, false
	}
	return t, true
}
