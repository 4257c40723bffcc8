package season

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DefaultWeekEndDates are the last days of each 2024 regular season week.
var DefaultWeekEndDates = []string{
	"2024-09-09", "2024-09-16", "2024-09-23", "2024-09-30",
	"2024-10-07", "2024-10-14", "2024-10-21", "2024-10-28",
	"2024-11-04", "2024-11-11", "2024-11-18", "2024-11-25",
	"2024-12-02", "2024-12-09", "2024-12-16", "2024-12-23",
	"2024-12-30", "2025-01-06",
}

// Calendar maps instants to NFL weeks using the final day of every week,
// evaluated at end of day in the league time zone.
type Calendar struct {
	loc      *time.Location
	weekEnds []time.Time
}

// NewCalendar parses YYYY-MM-DD week end dates. Dates must be ascending.
func NewCalendar(weekEndDates []string, loc *time.Location) (*Calendar, error) {
	if loc == nil {
		loc = time.UTC
	}
	if len(weekEndDates) == 0 {
		return nil, fmt.Errorf("at least one week end date is required")
	}

	weekEnds := make([]time.Time, 0, len(weekEndDates))
	for i, raw := range weekEndDates {
		day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), loc)
		if err != nil {
			return nil, fmt.Errorf("parse week %d end date %q: %w", i+1, raw, err)
		}
		endOfDay := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		if len(weekEnds) > 0 && !endOfDay.After(weekEnds[len(weekEnds)-1]) {
			return nil, fmt.Errorf("week %d end date %q is not after the previous week", i+1, raw)
		}
		weekEnds = append(weekEnds, endOfDay)
	}

	return &Calendar{loc: loc, weekEnds: weekEnds}, nil
}

// CurrentWeek returns the 1-based week containing now. Instants after the
// final week stay on the final week.
func (c *Calendar) CurrentWeek(now time.Time) int {
	for i, end := range c.weekEnds {
		if !now.After(end) {
			return i + 1
		}
	}
	return len(c.weekEnds)
}

func (c *Calendar) Weeks() int {
	return len(c.weekEnds)
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// ValidWeek reports whether week is inside the calendar.
func (c *Calendar) ValidWeek(week int) bool {
	return week >= 1 && week <= len(c.weekEnds)
}
