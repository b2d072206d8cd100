package charging

import (
	"fmt"
	"time"
)

// Month identifies one calendar month of a billing timeline.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the following calendar month, wrapping December into January
// of the next year.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// String renders the month as MM/YYYY.
func (m Month) String() string {
	return fmt.Sprintf("%02d/%04d", int(m.Month), m.Year)
}

// MonthsBetween returns the ordered calendar months spanning [start, stop],
// inclusive of both endpoints. When start and stop fall in the same month the
// sequence has exactly one element. This sequence is the single source of
// month alignment: every per-subscription and per-tenant series indexes by
// position in it.
func MonthsBetween(start, stop time.Time) []Month {
	months := []Month{MonthOf(start)}
	end := MonthOf(stop)
	if end.before(months[0]) {
		return months
	}
	for current := months[0]; current != end; {
		current = current.Next()
		months = append(months, current)
	}
	return months
}

func (m Month) before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}
