package ports

import (
	"context"

	"clockodo-mcp/internal/domain"
)

// StartClockParams carries the inputs for starting the clock. Optional fields
// are omitted from the request when zero, never sent as null or empty.
type StartClockParams struct {
	CustomerID int64
	ProjectID  *int64
	ServiceID  *int64
	Billable   bool
	Text       string
}

// CreateEntryParams carries the inputs for a manual entry. TimeSince and
// TimeUntil use the API's local-timestamp shape (YYYY-MM-DD HH:MM:SS).
type CreateEntryParams struct {
	CustomerID int64
	TimeSince  string
	TimeUntil  string
	ProjectID  *int64
	ServiceID  *int64
	Billable   bool
	Text       string
}

// EntryFilter narrows a GetEntries window. Nil fields are not sent.
type EntryFilter struct {
	CustomerID *int64
	ProjectID  *int64
	Billable   *bool
}

// TimeTracker defines the remote time-tracking operations consumed by the
// use cases and MCP handlers. One method per remote capability; list methods
// return empty slices for empty remote collections, never nil-as-error.
type TimeTracker interface {
	StartClock(ctx context.Context, p StartClockParams) (*domain.Clock, error)
	StopClock(ctx context.Context) error
	GetClock(ctx context.Context) (*domain.Clock, error)

	GetEntries(ctx context.Context, timeSince, timeUntil string, filter EntryFilter) ([]domain.TimeEntry, error)
	EntriesForWeek(ctx context.Context, year, week int) ([]domain.TimeEntry, error)
	CreateEntry(ctx context.Context, p CreateEntryParams) (*domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, id int64, fields map[string]any) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, id int64) error

	GetCustomers(ctx context.Context) ([]domain.Customer, error)
	GetProjects(ctx context.Context, customerID *int64) ([]domain.Project, error)
	GetServices(ctx context.Context) ([]domain.Service, error)
	GetUsers(ctx context.Context) ([]domain.User, error)
	CurrentUserID(ctx context.Context) (int64, error)
}
