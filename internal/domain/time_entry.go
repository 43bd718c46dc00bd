package domain

// TimeEntry represents a completed Clockodo time entry. TimeSince/TimeUntil
// are kept as the API's ISO-8601 UTC strings; parsing happens at the
// presentation layer so a single malformed entry cannot fail a whole fetch.
type TimeEntry struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	ProjectID    *int64
	ProjectName  string
	ServiceID    *int64
	ServiceName  string
	UserID       int64
	Billable     bool
	TimeSince    string
	TimeUntil    string
	Text         string
}

// Clock is the currently running time entry: a start time but no end yet.
// At most one clock runs per account.
type Clock struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	ProjectID    *int64
	ProjectName  string
	ServiceID    *int64
	ServiceName  string
	Billable     bool
	TimeSince    string
	Text         string
}
