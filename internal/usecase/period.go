package usecase

import (
	"fmt"
	"time"

	"clockodo-mcp/internal/domain"
)

// Period is a named calendar date range. Since and Until are dates; the
// adapter's StartOfDay/EndOfDay helpers turn them into filter boundaries.
type Period struct {
	Name  string
	Since time.Time
	Until time.Time
}

// PeriodNames lists the supported symbolic periods.
var PeriodNames = []string{"today", "yesterday", "week", "month"}

// PeriodRange maps a symbolic period name to a date range anchored on today.
// Weeks run Monday through Sunday. An unknown name is a validation error and
// never triggers a remote call.
func PeriodRange(name string, today time.Time) (Period, error) {
	today = truncateDay(today)
	switch name {
	case "today":
		return Period{Name: name, Since: today, Until: today}, nil
	case "yesterday":
		d := today.AddDate(0, 0, -1)
		return Period{Name: name, Since: d, Until: d}, nil
	case "week":
		monday := today.AddDate(0, 0, -mondayIndex(today))
		return Period{Name: name, Since: monday, Until: monday.AddDate(0, 0, 6)}, nil
	case "month":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, 0).AddDate(0, 0, -1)
		return Period{Name: name, Since: first, Until: last}, nil
	default:
		return Period{}, domain.NewValidationError(
			fmt.Sprintf("invalid period %q. Use: today, yesterday, week, month", name))
	}
}

// mondayIndex returns the day-of-week with Monday=0 .. Sunday=6.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
