package domain

// Customer represents a Clockodo customer in the domain layer.
// Customers are fetched on demand and never cached locally.
type Customer struct {
	ID     int64
	Name   string
	Active bool
}

// Service represents a bookable Clockodo service (e.g. "Development").
type Service struct {
	ID     int64
	Name   string
	Active bool
}
