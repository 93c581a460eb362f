package shisan

import (
	"fmt"
	"strings"
	"time"
)

// Period selects the lookback window of a performance comparison.
type Period int

const (
	Day Period = iota
	Week
	Month
	YearToDate
)

func (p Period) String() string {
	switch p {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case YearToDate:
		return "year"
	default:
		return "period"
	}
}

// Label returns the display name for the period (e.g., "Year-to-Date").
func (p Period) Label() string {
	switch p {
	case Day:
		return "1 Day"
	case Week:
		return "1 Week"
	case Month:
		return "1 Month"
	case YearToDate:
		return "Year-to-Date"
	default:
		return "Period"
	}
}

// ComparisonStart returns the first day of the comparison window ending at
// 'today'. Day looks back one day, Week seven days, Month thirty, YearToDate
// to January 1st of today's year.
func (p Period) ComparisonStart(today Date) Date {
	switch p {
	case Day:
		return today.Add(-1)
	case Week:
		return today.Add(-7)
	case Month:
		return today.Add(-30)
	case YearToDate:
		return NewDate(today.Year(), time.January, 1)
	default:
		panic("unknown period")
	}
}

func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "day", "daily", "1d":
		return Day, nil
	case "week", "weekly", "1w":
		return Week, nil
	case "month", "monthly", "1m":
		return Month, nil
	case "year", "ytd", "year-to-date":
		return YearToDate, nil
	default:
		return Day, fmt.Errorf("unknown period %q", p)
	}
}
