package domain

// Project represents a Clockodo project. Every project belongs to a customer.
type Project struct {
	ID         int64
	CustomerID int64
	Name       string
	Active     bool
}
