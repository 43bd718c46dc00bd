package clockodo

import "time"

// The Clockodo v2 API uses two timestamp shapes: UTC-anchored ISO strings for
// read filters and a local date+time form for write operations.
const (
	localLayout = "2006-01-02 15:04:05"
	dateLayout  = "2006-01-02"
	// The time-of-day boundaries are fixed literals; they must not pass
	// through time.Format, which would treat their digits as layout verbs.
	dayStartSuffix = "T00:00:00Z"
	dayEndSuffix   = "T23:59:59Z"
)

// FormatDateTime renders an instant in the API's local write shape,
// e.g. "2024-01-05 09:30:00".
func FormatDateTime(t time.Time) string {
	return t.Format(localLayout)
}

// StartOfDay renders the start-of-day UTC filter boundary for a calendar date.
func StartOfDay(d time.Time) string {
	return d.Format(dateLayout) + dayStartSuffix
}

// EndOfDay renders the end-of-day UTC filter boundary for a calendar date.
func EndOfDay(d time.Time) string {
	return d.Format(dateLayout) + dayEndSuffix
}
