package usecase

import (
	"context"

	"clockodo-mcp/internal/domain"
	"clockodo-mcp/internal/ports"
)

// fakeClient is an in-memory ports.TimeTracker for use-case tests.
type fakeClient struct {
	customers []domain.Customer
	projects  []domain.Project
	services  []domain.Service
	users     []domain.User
	entries   []domain.TimeEntry
	clock     *domain.Clock

	clockErr  error
	stopErr   error
	deleteErr error
	listErr   error

	started []ports.StartClockParams
	created []ports.CreateEntryParams
	calls   int
}

func (f *fakeClient) StartClock(ctx context.Context, p ports.StartClockParams) (*domain.Clock, error) {
	f.calls++
	f.started = append(f.started, p)
	return f.clock, nil
}

func (f *fakeClient) StopClock(ctx context.Context) error {
	f.calls++
	return f.stopErr
}

func (f *fakeClient) GetClock(ctx context.Context) (*domain.Clock, error) {
	f.calls++
	if f.clockErr != nil {
		return nil, f.clockErr
	}
	return f.clock, nil
}

func (f *fakeClient) GetEntries(ctx context.Context, since, until string, filter ports.EntryFilter) ([]domain.TimeEntry, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeClient) EntriesForWeek(ctx context.Context, year, week int) ([]domain.TimeEntry, error) {
	f.calls++
	return f.entries, nil
}

func (f *fakeClient) CreateEntry(ctx context.Context, p ports.CreateEntryParams) (*domain.TimeEntry, error) {
	f.calls++
	f.created = append(f.created, p)
	return &domain.TimeEntry{ID: 1, CustomerID: p.CustomerID}, nil
}

func (f *fakeClient) UpdateEntry(ctx context.Context, id int64, fields map[string]any) (*domain.TimeEntry, error) {
	f.calls++
	return &domain.TimeEntry{ID: id}, nil
}

func (f *fakeClient) DeleteEntry(ctx context.Context, id int64) error {
	f.calls++
	return f.deleteErr
}

func (f *fakeClient) GetCustomers(ctx context.Context) ([]domain.Customer, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.customers, nil
}

func (f *fakeClient) GetProjects(ctx context.Context, customerID *int64) ([]domain.Project, error) {
	f.calls++
	if customerID == nil {
		return f.projects, nil
	}
	out := []domain.Project{}
	for _, p := range f.projects {
		if p.CustomerID == *customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeClient) GetServices(ctx context.Context) ([]domain.Service, error) {
	f.calls++
	return f.services, nil
}

func (f *fakeClient) GetUsers(ctx context.Context) ([]domain.User, error) {
	f.calls++
	return f.users, nil
}

func (f *fakeClient) CurrentUserID(ctx context.Context) (int64, error) {
	f.calls++
	for _, u := range f.users {
		if u.Email == "me@example.com" {
			return u.ID, nil
		}
	}
	return 0, domain.NewDomainError(404, "user not found")
}
