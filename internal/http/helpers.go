package http

import (
	"strconv"
	"strings"
	"time"
)

// sanitizeInput drops control characters other than tab and newlines and
// trims whitespace.
func sanitizeInput(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s))
}

// viewKey identifies a cached view: the calendar day plus the state version.
func viewKey(now time.Time, version uint64) string {
	return now.Format("2006-01-02") + ":v" + strconv.FormatUint(version, 10)
}
