/*
calendar.go - Workday / rest-day classification

PURPOSE:
  Classifies every day of a month as a Workday or a Rest Day, which drives
  the DSR (weekly-rest compensation) calculation:

    Rest Day: Sunday OR a national/regional holiday
    Workday:  Monday-Saturday, not a holiday

  Saturday is a WORKDAY unless it coincides with a holiday. A holiday falling
  on a Sunday does not add a second rest day (the day is already resting).

  A third count, benefit days (Monday-Friday, not a holiday), drives the
  daily transport/meal voucher totals.

HOLIDAY SOURCE:
  Holiday data comes from outside through the HolidaySource interface, so the
  classifier works for any region the source understands and tests can swap
  in fixed holiday sets. An unrecognized region surfaces immediately as
  ErrInvalidRegion; there is no local recovery because every projected month
  would be wrong.

SEE ALSO:
  - holiday/brazil.go: the production HolidaySource (national + UF holidays)
  - payroll.go: consumes the classification
*/
package engine

import "time"

// =============================================================================
// HOLIDAY SOURCE - External collaborator
// =============================================================================

// HolidaySource answers "which dates are holidays in this region and year?".
// Implementations must be pure lookups: same inputs, same set, no side
// effects visible to the engine. The returned map keys are the holiday dates;
// values are display names.
type HolidaySource interface {
	HolidaysFor(year int, region string) (map[Date]string, error)
}

// =============================================================================
// MONTH CALENDAR - Classification result
// =============================================================================

// MonthCalendar is the day classification of one month.
// Workdays + RestDays always equals the number of days in the month.
type MonthCalendar struct {
	Workdays    int
	RestDays    int
	BenefitDays int
}

// ClassifyMonth classifies every day of m for the given region.
func ClassifyMonth(m Month, region string, src HolidaySource) (MonthCalendar, error) {
	holidays, err := src.HolidaysFor(m.Year(), region)
	if err != nil {
		return MonthCalendar{}, &InvalidRegionError{Region: region, Cause: err}
	}

	var cal MonthCalendar
	for day := 1; day <= m.Days(); day++ {
		date := m.Date(day)
		wd := date.Weekday()
		_, holiday := holidays[date]

		if wd == time.Sunday || holiday {
			cal.RestDays++
			continue
		}
		cal.Workdays++
		if wd != time.Saturday {
			cal.BenefitDays++
		}
	}
	return cal, nil
}
