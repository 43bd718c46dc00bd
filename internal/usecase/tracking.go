package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clockodo-mcp/internal/adapter/clockodo"
	"clockodo-mcp/internal/domain"
	"clockodo-mcp/internal/ports"
)

// Tracker coordinates the resolve-then-act flows behind the MCP tools.
// Every method issues its remote calls strictly sequentially; there is no
// state shared between invocations beyond the read-only client.
type Tracker struct {
	Log     *slog.Logger
	Client  ports.TimeTracker
	Resolve *Resolver

	// Now enables deterministic tests; defaults to time.Now.
	Now func() time.Time
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// NotFound reports a failed name resolution: which kind of resource, the
// queried name, and up to five available names for a "did you mean" hint.
type NotFound struct {
	Kind        string // "customer", "project" or "service"
	Name        string
	Suggestions []string
}

// StartRequest carries the free-text inputs of start_time_tracking.
type StartRequest struct {
	Customer    string
	Project     string
	Service     string
	Description string
}

// StartResult reports a started clock, or the name that failed to resolve.
type StartResult struct {
	NotFound *NotFound
	Customer Match
	Project  *Match
	Service  *Match
}

// Start resolves customer, project and service in order and begins the
// clock. Resolution misses are soft outcomes, not errors.
func (t *Tracker) Start(ctx context.Context, req StartRequest) (StartResult, error) {
	var res StartResult

	customer, suggestions, err := t.Resolve.Customer(ctx, req.Customer)
	if err != nil {
		return res, err
	}
	if customer == nil {
		res.NotFound = &NotFound{Kind: "customer", Name: req.Customer, Suggestions: suggestions}
		return res, nil
	}
	res.Customer = *customer

	if req.Project != "" {
		project, _, err := t.Resolve.Project(ctx, customer.ID, req.Project)
		if err != nil {
			return res, err
		}
		if project == nil {
			res.NotFound = &NotFound{Kind: "project", Name: req.Project}
			return res, nil
		}
		res.Project = project
	}

	if req.Service != "" {
		service, _, err := t.Resolve.Service(ctx, req.Service)
		if err != nil {
			return res, err
		}
		if service == nil {
			res.NotFound = &NotFound{Kind: "service", Name: req.Service}
			return res, nil
		}
		res.Service = service
	}

	params := ports.StartClockParams{
		CustomerID: customer.ID,
		Billable:   true,
		Text:       req.Description,
	}
	if res.Project != nil {
		params.ProjectID = &res.Project.ID
	}
	if res.Service != nil {
		params.ServiceID = &res.Service.ID
	}
	if _, err := t.Client.StartClock(ctx, params); err != nil {
		return res, err
	}
	t.Log.Info("clock started",
		slog.String("customer", customer.Name),
		slog.Int64("customers_id", customer.ID),
	)
	return res, nil
}

// StopResult reports whether a clock was running and, when its start time
// parsed, the elapsed hours of the stopped run.
type StopResult struct {
	WasRunning bool
	Hours      float64
	Timed      bool
}

// Stop checks for a running clock and stops it. An absent clock is a soft
// outcome; a failed presence check is treated as absence.
func (t *Tracker) Stop(ctx context.Context) (StopResult, error) {
	running := t.Running(ctx)
	if running == nil {
		return StopResult{}, nil
	}
	if err := t.Client.StopClock(ctx); err != nil {
		return StopResult{}, err
	}
	res := StopResult{WasRunning: true}
	if start, err := time.Parse(time.RFC3339, running.TimeSince); err == nil {
		res.Hours = t.now().UTC().Sub(start).Hours()
		res.Timed = true
	}
	t.Log.Info("clock stopped", slog.Int64("entry_id", running.ID))
	return res, nil
}

// Running returns the current clock, or nil when nothing is running or the
// presence check failed. A presence check never fails hard.
func (t *Tracker) Running(ctx context.Context) *domain.Clock {
	clock, err := t.Client.GetClock(ctx)
	if err != nil {
		t.Log.Debug("clock fetch failed, treating as absent", slog.String("error", err.Error()))
		return nil
	}
	return clock
}

// CreateRequest carries the inputs of create_time_entry. Date is YYYY-MM-DD,
// Start/End are HH:MM.
type CreateRequest struct {
	Customer    string
	Date        string
	Start       string
	End         string
	Project     string
	Service     string
	Description string
}

// CreateResult reports a created entry, or the customer that failed to
// resolve.
type CreateResult struct {
	NotFound *NotFound
	Customer Match
	Hours    float64
}

// Create validates the date and time inputs locally, resolves names and
// creates a completed entry. Unresolvable projects and services are skipped
// silently; only the customer is mandatory.
func (t *Tracker) Create(ctx context.Context, req CreateRequest) (CreateResult, error) {
	var res CreateResult

	timeSince := fmt.Sprintf("%s %s:00", req.Date, req.Start)
	timeUntil := fmt.Sprintf("%s %s:00", req.Date, req.End)
	start, err := time.Parse("2006-01-02 15:04:05", timeSince)
	if err != nil {
		return res, domain.NewValidationError(fmt.Sprintf("invalid date/time: %q is not YYYY-MM-DD HH:MM", req.Date+" "+req.Start))
	}
	end, err := time.Parse("2006-01-02 15:04:05", timeUntil)
	if err != nil {
		return res, domain.NewValidationError(fmt.Sprintf("invalid date/time: %q is not YYYY-MM-DD HH:MM", req.Date+" "+req.End))
	}

	customer, suggestions, err := t.Resolve.Customer(ctx, req.Customer)
	if err != nil {
		return res, err
	}
	if customer == nil {
		res.NotFound = &NotFound{Kind: "customer", Name: req.Customer, Suggestions: suggestions}
		return res, nil
	}
	res.Customer = *customer

	params := ports.CreateEntryParams{
		CustomerID: customer.ID,
		TimeSince:  timeSince,
		TimeUntil:  timeUntil,
		Billable:   true,
		Text:       req.Description,
	}
	if req.Project != "" {
		if project, _, err := t.Resolve.Project(ctx, customer.ID, req.Project); err != nil {
			return res, err
		} else if project != nil {
			params.ProjectID = &project.ID
		}
	}
	if req.Service != "" {
		if service, _, err := t.Resolve.Service(ctx, req.Service); err != nil {
			return res, err
		} else if service != nil {
			params.ServiceID = &service.ID
		}
	}

	if _, err := t.Client.CreateEntry(ctx, params); err != nil {
		return res, err
	}
	res.Hours = end.Sub(start).Hours()
	t.Log.Info("entry created",
		slog.String("customer", customer.Name),
		slog.String("date", req.Date),
	)
	return res, nil
}

// PeriodEntries is a period's entries filtered to the current user. Fetched
// counts the entries before the user filter so callers can distinguish "no
// entries at all" from "none of yours".
type PeriodEntries struct {
	Period  Period
	Entries []domain.TimeEntry
	Fetched int
}

// EntriesForPeriod fetches the named period's entries and keeps only those
// belonging to the authenticated user.
func (t *Tracker) EntriesForPeriod(ctx context.Context, period string) (PeriodEntries, error) {
	p, err := PeriodRange(period, t.now())
	if err != nil {
		return PeriodEntries{}, err
	}

	entries, err := t.Client.GetEntries(ctx, clockodo.StartOfDay(p.Since), clockodo.EndOfDay(p.Until), ports.EntryFilter{})
	if err != nil {
		return PeriodEntries{}, err
	}
	res := PeriodEntries{Period: p, Fetched: len(entries), Entries: []domain.TimeEntry{}}
	if len(entries) == 0 {
		return res, nil
	}

	userID, err := t.Client.CurrentUserID(ctx)
	if err != nil {
		return PeriodEntries{}, err
	}
	for _, e := range entries {
		if e.UserID == userID {
			res.Entries = append(res.Entries, e)
		}
	}
	return res, nil
}

// Delete removes an entry, collapsing any failure into a boolean outcome.
func (t *Tracker) Delete(ctx context.Context, id int64) bool {
	if err := t.Client.DeleteEntry(ctx, id); err != nil {
		t.Log.Debug("entry delete failed", slog.Int64("entry_id", id), slog.String("error", err.Error()))
		return false
	}
	return true
}
