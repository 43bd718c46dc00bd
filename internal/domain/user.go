package domain

// User represents a Clockodo account member.
type User struct {
	ID     int64
	Name   string
	Email  string
	Role   string
	Active bool
}
