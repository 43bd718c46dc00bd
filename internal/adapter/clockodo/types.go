package clockodo

import "clockodo-mcp/internal/domain"

// Raw structs mirror the JSON shapes of the Clockodo v2 API. Billable is an
// integer on the wire (0 = not billable, 1 = billable, 2 = already billed).

type rawEntry struct {
	ID           int64  `json:"id"`
	CustomersID  int64  `json:"customers_id"`
	CustomersName string `json:"customers_name"`
	ProjectsID   *int64 `json:"projects_id"`
	ProjectsName string `json:"projects_name"`
	ServicesID   *int64 `json:"services_id"`
	ServicesName string `json:"services_name"`
	UsersID      int64  `json:"users_id"`
	Billable     int    `json:"billable"`
	TimeSince    string `json:"time_since"`
	TimeUntil    string `json:"time_until"`
	Text         string `json:"text"`
}

type rawCustomer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type rawProject struct {
	ID          int64  `json:"id"`
	CustomersID int64  `json:"customers_id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
}

type rawService struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type rawUser struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// Response envelopes. The API wraps every collection and single resource in a
// named key; absent keys decode to nil and are normalized by the client.

type clockResponse struct {
	RunningEntry *rawEntry `json:"running_entry"`
}

type entriesResponse struct {
	Entries []rawEntry `json:"entries"`
}

type entryResponse struct {
	Entry *rawEntry `json:"entry"`
}

type customersResponse struct {
	Customers []rawCustomer `json:"customers"`
}

type projectsResponse struct {
	Projects []rawProject `json:"projects"`
}

type servicesResponse struct {
	Services []rawService `json:"services"`
}

type usersResponse struct {
	Users []rawUser `json:"users"`
}

// apiErrorBody is the error body the API returns on non-2xx statuses.
type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (r rawEntry) toDomain() domain.TimeEntry {
	return domain.TimeEntry{
		ID:           r.ID,
		CustomerID:   r.CustomersID,
		CustomerName: r.CustomersName,
		ProjectID:    copyID(r.ProjectsID),
		ProjectName:  r.ProjectsName,
		ServiceID:    copyID(r.ServicesID),
		ServiceName:  r.ServicesName,
		UserID:       r.UsersID,
		Billable:     r.Billable != 0,
		TimeSince:    r.TimeSince,
		TimeUntil:    r.TimeUntil,
		Text:         r.Text,
	}
}

func (r rawEntry) toClock() *domain.Clock {
	return &domain.Clock{
		ID:           r.ID,
		CustomerID:   r.CustomersID,
		CustomerName: r.CustomersName,
		ProjectID:    copyID(r.ProjectsID),
		ProjectName:  r.ProjectsName,
		ServiceID:    copyID(r.ServicesID),
		ServiceName:  r.ServicesName,
		Billable:     r.Billable != 0,
		TimeSince:    r.TimeSince,
		Text:         r.Text,
	}
}

func copyID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	id := *p
	return &id
}
