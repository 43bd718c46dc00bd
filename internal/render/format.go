// Package render turns raw API results into the human-readable text the MCP
// tools and resources return. All duration figures display with two decimal
// places; aggregation keeps full precision until the final rendering.
package render

import (
	"fmt"
	"strings"
	"time"

	"clockodo-mcp/internal/domain"
)

// Duration computes an entry's length in hours from its two ISO timestamps.
func Duration(timeSince, timeUntil string) (float64, error) {
	start, err := time.Parse(time.RFC3339, timeSince)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse(time.RFC3339, timeUntil)
	if err != nil {
		return 0, err
	}
	return end.Sub(start).Hours(), nil
}

// Entries renders a period's entry list with per-entry durations and a
// total. Entries whose timestamps fail to parse are reported inline rather
// than dropped, and excluded from the total.
func Entries(period string, entries []domain.TimeEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Time entries for %s:\n\n", period)

	var total float64
	for _, e := range entries {
		customer := entryCustomer(e)
		start, err1 := time.Parse(time.RFC3339, e.TimeSince)
		end, err2 := time.Parse(time.RFC3339, e.TimeUntil)
		if err1 != nil || err2 != nil {
			fmt.Fprintf(&b, "• %s - Invalid time format\n", customer)
			continue
		}
		hours := end.Sub(start).Hours()
		total += hours

		fmt.Fprintf(&b, "• %s-%s %s", start.Format("01/02 15:04"), end.Format("15:04"), customer)
		if e.ProjectName != "" {
			fmt.Fprintf(&b, " - %s", e.ProjectName)
		}
		if e.ServiceName != "" {
			fmt.Fprintf(&b, " (%s)", e.ServiceName)
		}
		fmt.Fprintf(&b, " [%.2fh]", hours)
		if e.Text != "" {
			fmt.Fprintf(&b, "\n  📝 %s", e.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n⏱️ Total: %.2f hours", total)
	return b.String()
}

// Summary renders total hours plus a customer→project breakdown. Groups
// appear in first-seen order; entries with unparsable timestamps are skipped.
func Summary(period string, entries []domain.TimeEntry) string {
	type projectTotal struct {
		name  string
		hours float64
	}
	type customerGroup struct {
		name     string
		projects []*projectTotal
		index    map[string]*projectTotal
	}

	var (
		total  float64
		groups []*customerGroup
		byName = map[string]*customerGroup{}
	)
	for _, e := range entries {
		hours, err := Duration(e.TimeSince, e.TimeUntil)
		if err != nil {
			continue
		}
		total += hours

		customer := entryCustomer(e)
		project := e.ProjectName
		if project == "" {
			project = "General"
		}

		group, ok := byName[customer]
		if !ok {
			group = &customerGroup{name: customer, index: map[string]*projectTotal{}}
			byName[customer] = group
			groups = append(groups, group)
		}
		pt, ok := group.index[project]
		if !ok {
			pt = &projectTotal{name: project}
			group.index[project] = pt
			group.projects = append(group.projects, pt)
		}
		pt.hours += hours
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Work Summary (%s):\n\n", period)
	fmt.Fprintf(&b, "⏱️ Total Hours: %.2fh\n\n", total)
	for _, g := range groups {
		var customerTotal float64
		for _, p := range g.projects {
			customerTotal += p.hours
		}
		fmt.Fprintf(&b, "👤 %s: %.2fh\n", g.name, customerTotal)
		for _, p := range g.projects {
			fmt.Fprintf(&b, "  📁 %s: %.2fh\n", p.name, p.hours)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Running renders the currently running clock with its elapsed time.
func Running(c *domain.Clock, now time.Time) string {
	var b strings.Builder
	customer := c.CustomerName
	if customer == "" {
		customer = "Unknown"
	}
	fmt.Fprintf(&b, "⏰ Currently tracking: %s", customer)
	if c.ProjectName != "" {
		fmt.Fprintf(&b, " - %s", c.ProjectName)
	}
	if c.ServiceName != "" {
		fmt.Fprintf(&b, " (%s)", c.ServiceName)
	}
	if c.Text != "" {
		fmt.Fprintf(&b, "\nDescription: %s", c.Text)
	}
	if c.TimeSince != "" {
		if start, err := time.Parse(time.RFC3339, c.TimeSince); err == nil {
			hours := now.UTC().Sub(start).Hours()
			fmt.Fprintf(&b, "\nDuration: %.2f hours (started %s)", hours, start.Format("15:04"))
		} else {
			fmt.Fprintf(&b, "\nStarted: %s", c.TimeSince)
		}
	}
	return b.String()
}

// Customers renders the customer catalog.
func Customers(customers []domain.Customer) string {
	var b strings.Builder
	b.WriteString("👥 Customers:\n\n")
	for _, c := range customers {
		fmt.Fprintf(&b, "• %s (ID: %d)\n", c.Name, c.ID)
	}
	return b.String()
}

// Projects renders one customer's project catalog.
func Projects(customerName string, projects []domain.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📁 Projects for %s:\n\n", customerName)
	for _, p := range projects {
		fmt.Fprintf(&b, "• %s (ID: %d)\n", p.Name, p.ID)
	}
	return b.String()
}

// Services renders the service catalog.
func Services(services []domain.Service) string {
	var b strings.Builder
	b.WriteString("🔧 Services:\n\n")
	for _, s := range services {
		fmt.Fprintf(&b, "• %s (ID: %d)\n", s.Name, s.ID)
	}
	return b.String()
}

// Users renders the account member list with role and active status.
func Users(users []domain.User) string {
	var b strings.Builder
	b.WriteString("👥 Users:\n\n")
	for _, u := range users {
		status := "❌ Inactive"
		if u.Active {
			status = "✅ Active"
		}
		email := u.Email
		if email == "" {
			email = "No email"
		}
		role := u.Role
		if role == "" {
			role = "Unknown"
		}
		fmt.Fprintf(&b, "• %s (ID: %d)\n", u.Name, u.ID)
		fmt.Fprintf(&b, "  📧 %s\n", email)
		fmt.Fprintf(&b, "  🎭 Role: %s | Status: %s\n\n", role, status)
	}
	return b.String()
}

func entryCustomer(e domain.TimeEntry) string {
	if e.CustomerName == "" {
		return "Unknown"
	}
	return e.CustomerName
}
