package clockodo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"clockodo-mcp/internal/domain"
	"clockodo-mcp/internal/ports"
)

// DefaultBaseURL is the Clockodo v2 API root.
const DefaultBaseURL = "https://my.clockodo.com/api/v2"

// Client implements ports.TimeTracker against the Clockodo v2 API.
// It holds no mutable state after construction and is safe for concurrent use.
type Client struct {
	baseURL     string
	email       string
	apiKey      string
	application string
	http        *http.Client
	log         *slog.Logger
}

// NewClient builds an authenticated client. Both credentials are required;
// a missing one is a configuration error raised before any network call.
func NewClient(baseURL, email, apiKey, application string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	if email == "" || apiKey == "" {
		return nil, domain.NewConfigError("clockodo email and API key must be provided")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if application == "" {
		application = "clockodo-mcp contact@example.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL:     baseURL,
		email:       email,
		apiKey:      apiKey,
		application: application,
		http:        &http.Client{Timeout: timeout},
		log:         log,
	}
	log.Info("clockodo client initialized", slog.String("email", email), slog.Duration("timeout", timeout))
	return c, nil
}

// Email returns the configured account identifier.
func (c *Client) Email() string { return c.email }

// do performs one authenticated request and decodes the JSON response into
// out (skipped when out is nil). Any HTTP error status or transport failure
// is translated into a *domain.APIError; no retries are performed.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any, out any) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return domain.NewDomainError(0, fmt.Sprintf("request failed: %v", err))
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return domain.NewDomainError(0, fmt.Sprintf("request failed: %v", err))
	}
	req.Header.Set("X-ClockodoApiUser", c.email)
	req.Header.Set("X-ClockodoApiKey", c.apiKey)
	req.Header.Set("X-Clockodo-External-Application", c.application)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("clockodo request", slog.String("method", method), slog.String("endpoint", endpoint))

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewDomainError(0, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	c.log.Debug("clockodo response",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := string(raw)
		var eb apiErrorBody
		if json.Unmarshal(raw, &eb) == nil {
			if eb.Message != "" {
				msg = eb.Message
			} else if eb.Error != "" {
				msg = eb.Error
			}
		}
		c.log.Error("clockodo API error",
			slog.Int("status", resp.StatusCode),
			slog.String("endpoint", endpoint),
			slog.String("detail", msg),
		)
		return domain.NewDomainError(resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewDomainError(0, fmt.Sprintf("request failed: %v", err))
	}
	return nil
}

// StartClock begins a running entry. Optional fields are attached only when
// present. The started clock is returned as the API reports it.
func (c *Client) StartClock(ctx context.Context, p ports.StartClockParams) (*domain.Clock, error) {
	q := url.Values{}
	q.Set("customers_id", strconv.FormatInt(p.CustomerID, 10))
	q.Set("billable", boolParam(p.Billable))
	if p.ProjectID != nil {
		q.Set("projects_id", strconv.FormatInt(*p.ProjectID, 10))
	}
	if p.ServiceID != nil {
		q.Set("services_id", strconv.FormatInt(*p.ServiceID, 10))
	}
	if p.Text != "" {
		q.Set("text", p.Text)
	}
	var result clockResponse
	if err := c.do(ctx, http.MethodPost, "/clock", q, nil, &result); err != nil {
		return nil, err
	}
	if result.RunningEntry == nil {
		return nil, nil
	}
	return result.RunningEntry.toClock(), nil
}

// StopClock ends the currently running entry. When nothing is running the
// remote service reports a domain error, surfaced unchanged.
func (c *Client) StopClock(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/clock", nil, nil, nil)
}

// GetClock fetches the running entry, or nil when none is running. The error
// is returned for callers that need the distinction, but the expected use is
// to treat any failure as absence (a presence check must never fail hard).
func (c *Client) GetClock(ctx context.Context) (*domain.Clock, error) {
	var result clockResponse
	if err := c.do(ctx, http.MethodGet, "/clock", nil, nil, &result); err != nil {
		return nil, err
	}
	if result.RunningEntry == nil {
		return nil, nil
	}
	return result.RunningEntry.toClock(), nil
}

// GetEntries fetches entries in the closed window [timeSince, timeUntil].
// Both boundaries use the UTC filter shape produced by StartOfDay/EndOfDay.
func (c *Client) GetEntries(ctx context.Context, timeSince, timeUntil string, filter ports.EntryFilter) ([]domain.TimeEntry, error) {
	q := url.Values{}
	q.Set("time_since", timeSince)
	q.Set("time_until", timeUntil)
	if filter.CustomerID != nil {
		q.Set("customers_id", strconv.FormatInt(*filter.CustomerID, 10))
	}
	if filter.ProjectID != nil {
		q.Set("projects_id", strconv.FormatInt(*filter.ProjectID, 10))
	}
	if filter.Billable != nil {
		q.Set("billable", boolParam(*filter.Billable))
	}
	var result entriesResponse
	if err := c.do(ctx, http.MethodGet, "/entries", q, nil, &result); err != nil {
		return nil, err
	}
	out := make([]domain.TimeEntry, 0, len(result.Entries))
	for _, r := range result.Entries {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// EntriesForWeek fetches entries for an ISO-style week of the given year,
// Monday through Sunday.
func (c *Client) EntriesForWeek(ctx context.Context, year, week int) ([]domain.TimeEntry, error) {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(jan1.Weekday()) + 6) % 7 // Monday=0
	start := jan1.AddDate(0, 0, (week-1)*7-offset)
	end := start.AddDate(0, 0, 6)
	return c.GetEntries(ctx, StartOfDay(start), EndOfDay(end), ports.EntryFilter{})
}

// CreateEntry creates a completed entry and returns it as stored remotely.
func (c *Client) CreateEntry(ctx context.Context, p ports.CreateEntryParams) (*domain.TimeEntry, error) {
	data := map[string]any{
		"customers_id": p.CustomerID,
		"time_since":   p.TimeSince,
		"time_until":   p.TimeUntil,
		"billable":     billableInt(p.Billable),
	}
	if p.ProjectID != nil {
		data["projects_id"] = *p.ProjectID
	}
	if p.ServiceID != nil {
		data["services_id"] = *p.ServiceID
	}
	if p.Text != "" {
		data["text"] = p.Text
	}
	var result entryResponse
	if err := c.do(ctx, http.MethodPost, "/entries", nil, data, &result); err != nil {
		return nil, err
	}
	if result.Entry == nil {
		return nil, domain.NewDomainError(0, "create entry: empty response")
	}
	entry := result.Entry.toDomain()
	return &entry, nil
}

// UpdateEntry applies a partial update and returns the updated entry.
func (c *Client) UpdateEntry(ctx context.Context, id int64, fields map[string]any) (*domain.TimeEntry, error) {
	var result entryResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/entries/%d", id), nil, fields, &result); err != nil {
		return nil, err
	}
	if result.Entry == nil {
		return nil, domain.NewDomainError(0, "update entry: empty response")
	}
	entry := result.Entry.toDomain()
	return &entry, nil
}

// DeleteEntry removes an entry. The error is typed so callers can still
// distinguish failure modes; the MCP layer collapses it to a boolean outcome.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/entries/%d", id), nil, nil, nil)
}

// GetCustomers fetches all customers. Empty remote collections yield an
// empty slice, never nil.
func (c *Client) GetCustomers(ctx context.Context) ([]domain.Customer, error) {
	var result customersResponse
	if err := c.do(ctx, http.MethodGet, "/customers", nil, nil, &result); err != nil {
		return nil, err
	}
	out := make([]domain.Customer, 0, len(result.Customers))
	for _, r := range result.Customers {
		out = append(out, domain.Customer{ID: r.ID, Name: r.Name, Active: r.Active})
	}
	return out, nil
}

// GetProjects fetches projects, scoped to one customer when customerID is set.
func (c *Client) GetProjects(ctx context.Context, customerID *int64) ([]domain.Project, error) {
	q := url.Values{}
	if customerID != nil {
		q.Set("customers_id", strconv.FormatInt(*customerID, 10))
	}
	var result projectsResponse
	if err := c.do(ctx, http.MethodGet, "/projects", q, nil, &result); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(result.Projects))
	for _, r := range result.Projects {
		out = append(out, domain.Project{ID: r.ID, CustomerID: r.CustomersID, Name: r.Name, Active: r.Active})
	}
	return out, nil
}

// GetServices fetches all services.
func (c *Client) GetServices(ctx context.Context) ([]domain.Service, error) {
	var result servicesResponse
	if err := c.do(ctx, http.MethodGet, "/services", nil, nil, &result); err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(result.Services))
	for _, r := range result.Services {
		out = append(out, domain.Service{ID: r.ID, Name: r.Name, Active: r.Active})
	}
	return out, nil
}

// GetUsers fetches all account members.
func (c *Client) GetUsers(ctx context.Context) ([]domain.User, error) {
	var result usersResponse
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &result); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(result.Users))
	for _, r := range result.Users {
		out = append(out, domain.User{ID: r.ID, Name: r.Name, Email: r.Email, Role: r.Role, Active: r.Active})
	}
	return out, nil
}

// CurrentUserID finds the user whose email matches the configured account
// identifier. The authenticated account is expected to appear in the user
// list; its absence is a remote-configuration problem reported as an error.
func (c *Client) CurrentUserID(ctx context.Context) (int64, error) {
	users, err := c.GetUsers(ctx)
	if err != nil {
		return 0, err
	}
	for _, u := range users {
		if u.Email == c.email {
			return u.ID, nil
		}
	}
	c.log.Error("current clockodo user not found", slog.String("email", c.email))
	return 0, domain.NewDomainError(http.StatusNotFound, fmt.Sprintf("user with email %s not found", c.email))
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func billableInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
