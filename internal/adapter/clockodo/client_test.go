package clockodo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"clockodo-mcp/internal/domain"
	"clockodo-mcp/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, "me@example.com", "secret", "test-app", 5*time.Second, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRequiresCredentials(t *testing.T) {
	tests := []struct {
		name   string
		email  string
		apiKey string
	}{
		{"missing email", "", "secret"},
		{"missing key", "me@example.com", ""},
		{"missing both", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient("", tt.email, tt.apiKey, "", 0, testLogger())
			apiErr, ok := domain.AsAPIError(err)
			if !ok || apiErr.Kind != domain.KindConfig {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}

	if _, err := NewClient("", "me@example.com", "secret", "", 0, testLogger()); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotHeaders http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Write([]byte(`{"customers": []}`))
	})

	if _, err := c.GetCustomers(context.Background()); err != nil {
		t.Fatalf("GetCustomers: %v", err)
	}
	if got := gotHeaders.Get("X-ClockodoApiUser"); got != "me@example.com" {
		t.Errorf("X-ClockodoApiUser = %q", got)
	}
	if got := gotHeaders.Get("X-ClockodoApiKey"); got != "secret" {
		t.Errorf("X-ClockodoApiKey = %q", got)
	}
	if got := gotHeaders.Get("X-Clockodo-External-Application"); got != "test-app" {
		t.Errorf("X-Clockodo-External-Application = %q", got)
	}
}

func TestClientTranslatesStatusErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "access denied"}`))
	})

	_, err := c.GetCustomers(context.Background())
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindDomain {
		t.Fatalf("expected domain error, got %v", err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "access denied" {
		t.Errorf("message = %q, want message extracted from body", apiErr.Message)
	}
}

func TestClientStatusErrorFallsBackToRawBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := c.GetCustomers(context.Background())
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("message = %q, want raw body", apiErr.Message)
	}
}

func TestClientTransportFailureIsDomainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, err := NewClient(srv.URL, "me@example.com", "secret", "", time.Second, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.GetCustomers(context.Background())
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindDomain {
		t.Fatalf("expected domain error for transport failure, got %v", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("status = %d, want 0 with no HTTP response", apiErr.Status)
	}
}

func TestStartClockOmitsAbsentOptionals(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"running_entry": {"id": 9, "customers_id": 7, "customers_name": "Acme Corp", "billable": 1, "time_since": "2024-06-12T09:00:00Z"}}`))
	})

	clock, err := c.StartClock(context.Background(), ports.StartClockParams{CustomerID: 7, Billable: true})
	if err != nil {
		t.Fatalf("StartClock: %v", err)
	}
	if clock == nil || clock.ID != 9 || clock.CustomerName != "Acme Corp" {
		t.Fatalf("clock = %+v", clock)
	}
	if gotQuery.Get("customers_id") != "7" || gotQuery.Get("billable") != "1" {
		t.Errorf("query = %v", gotQuery)
	}
	for _, key := range []string{"projects_id", "services_id", "text"} {
		if gotQuery.Has(key) {
			t.Errorf("absent optional %q was sent as %q", key, gotQuery.Get(key))
		}
	}
}

func TestGetClockAbsent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"running_entry": null}`))
	})

	clock, err := c.GetClock(context.Background())
	if err != nil {
		t.Fatalf("GetClock: %v", err)
	}
	if clock != nil {
		t.Fatalf("clock = %+v, want nil", clock)
	}
}

func TestGetEntriesMissingKeyYieldsEmptySlice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	entries, err := c.GetEntries(context.Background(), "2024-01-01T00:00:00Z", "2024-01-01T23:59:59Z", ports.EntryFilter{})
	if err != nil {
		t.Fatalf("GetEntries: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("entries = %v, want empty non-nil slice", entries)
	}
}

func TestGetEntriesSendsWindowAndFilters(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"entries": [{"id": 1, "customers_id": 7, "users_id": 2, "billable": 1, "time_since": "2024-01-01T09:00:00Z", "time_until": "2024-01-01T17:30:00Z"}]}`))
	})

	customerID := int64(7)
	billable := true
	entries, err := c.GetEntries(context.Background(), "2024-01-01T00:00:00Z", "2024-01-01T23:59:59Z", ports.EntryFilter{
		CustomerID: &customerID,
		Billable:   &billable,
	})
	if err != nil {
		t.Fatalf("GetEntries: %v", err)
	}
	if gotQuery.Get("time_since") != "2024-01-01T00:00:00Z" || gotQuery.Get("time_until") != "2024-01-01T23:59:59Z" {
		t.Errorf("window query = %v", gotQuery)
	}
	if gotQuery.Get("customers_id") != "7" || gotQuery.Get("billable") != "1" {
		t.Errorf("filter query = %v", gotQuery)
	}
	if len(entries) != 1 || entries[0].CustomerID != 7 || !entries[0].Billable {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestEntriesForWeekWindow(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"entries": []}`))
	})

	// Week 24 of 2024 runs Monday June 10 through Sunday June 16.
	if _, err := c.EntriesForWeek(context.Background(), 2024, 24); err != nil {
		t.Fatalf("EntriesForWeek: %v", err)
	}
	if got := gotQuery.Get("time_since"); got != "2024-06-10T00:00:00Z" {
		t.Errorf("time_since = %q", got)
	}
	if got := gotQuery.Get("time_until"); got != "2024-06-16T23:59:59Z" {
		t.Errorf("time_until = %q", got)
	}
}

func TestCurrentUserID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users": [
			{"id": 1, "name": "Other", "email": "other@example.com"},
			{"id": 2, "name": "Me", "email": "me@example.com"}
		]}`))
	})

	id, err := c.CurrentUserID(context.Background())
	if err != nil {
		t.Fatalf("CurrentUserID: %v", err)
	}
	if id != 2 {
		t.Errorf("id = %d, want 2", id)
	}
}

func TestCurrentUserIDNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users": [{"id": 1, "email": "other@example.com"}]}`))
	})

	_, err := c.CurrentUserID(context.Background())
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteEntryHitsEntryPath(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"success": true}`))
	})

	if err := c.DeleteEntry(context.Background(), 42); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/entries/42" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestUpdateEntrySendsFields(t *testing.T) {
	var gotBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"entry": {"id": 42, "customers_id": 7, "customers_name": "Acme Corp", "users_id": 2, "billable": 1, "time_since": "2024-01-01T09:00:00Z", "time_until": "2024-01-01T10:00:00Z", "text": "updated"}}`))
	})

	entry, err := c.UpdateEntry(context.Background(), 42, map[string]any{"text": "updated"})
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if entry.Text != "updated" {
		t.Errorf("entry = %+v", entry)
	}
	if string(gotBody) != `{"text":"updated"}` {
		t.Errorf("body = %s", gotBody)
	}
}
