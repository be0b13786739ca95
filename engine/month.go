package engine

import "time"

// MonthLayout is the format used for month identifiers in documents and APIs.
const MonthLayout = "2006-01"

// =============================================================================
// MONTH - The "YYYY-MM" time axis of the projection
// =============================================================================

// Month is a calendar month in a specific year. Installment windows and
// projection steps are always compared as (year, month) pairs, never as
// strings, so ordering holds across year boundaries.
type Month struct {
	t time.Time // first day of the month, UTC
}

func NewMonth(year int, month time.Month) Month {
	return Month{t: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return NewMonth(t.Year(), t.Month())
}

// CurrentMonth returns the month containing the wall-clock now. The engine
// itself never calls this; callers use it to pick a projection start.
func CurrentMonth() Month {
	return MonthOf(time.Now())
}

// ParseMonth parses a "YYYY-MM" identifier.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, err
	}
	return MonthOf(t), nil
}

// Comparison
func (m Month) Before(o Month) bool        { return m.t.Before(o.t) }
func (m Month) After(o Month) bool         { return m.t.After(o.t) }
func (m Month) Equal(o Month) bool         { return m.t.Equal(o.t) }
func (m Month) BeforeOrEqual(o Month) bool { return !m.After(o) }
func (m Month) AfterOrEqual(o Month) bool  { return !m.Before(o) }

// Arithmetic
func (m Month) AddMonths(n int) Month { return MonthOf(m.t.AddDate(0, n, 0)) }
func (m Month) Next() Month           { return m.AddMonths(1) }

// Properties
func (m Month) Year() int         { return m.t.Year() }
func (m Month) Month() time.Month { return m.t.Month() }
func (m Month) IsZero() bool      { return m.t.IsZero() }

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return m.t.AddDate(0, 1, -1).Day()
}

// Date returns the given day of this month as a Date.
func (m Month) Date(day int) Date {
	return Date{Year: m.Year(), Month: m.Month(), Day: day}
}

func (m Month) String() string { return m.t.Format(MonthLayout) }

// =============================================================================
// DATE - Comparable calendar day (holiday set keys)
// =============================================================================

// Date is a plain calendar day. It is a comparable value type so holiday sets
// can be plain maps.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
