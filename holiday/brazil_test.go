package holiday_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verde/budget-engine/engine"
	"github.com/verde/budget-engine/holiday"
)

func date(y int, m time.Month, d int) engine.Date {
	return engine.Date{Year: y, Month: m, Day: d}
}

// =============================================================================
// HOLIDAY SET TESTS
// =============================================================================

func TestBrazil_NationalHolidays2024(t *testing.T) {
	br := holiday.NewBrazil()
	set, err := br.HolidaysFor(2024, "SP")
	require.NoError(t, err)

	// Fixed national dates
	assert.Contains(t, set, date(2024, time.January, 1))
	assert.Contains(t, set, date(2024, time.April, 21))
	assert.Contains(t, set, date(2024, time.May, 1))
	assert.Contains(t, set, date(2024, time.September, 7))
	assert.Contains(t, set, date(2024, time.December, 25))

	// Easter 2024 was March 31: Good Friday Mar 29, Carnival Feb 12-13,
	// Corpus Christi May 30.
	assert.Contains(t, set, date(2024, time.March, 29))
	assert.Contains(t, set, date(2024, time.February, 12))
	assert.Contains(t, set, date(2024, time.February, 13))
	assert.Contains(t, set, date(2024, time.May, 30))
}

func TestBrazil_MovableFeasts2025(t *testing.T) {
	// Easter 2025 is April 20: Good Friday Apr 18, Corpus Christi Jun 19.
	br := holiday.NewBrazil()
	set, err := br.HolidaysFor(2025, "SP")
	require.NoError(t, err)

	assert.Contains(t, set, date(2025, time.April, 18))
	assert.Contains(t, set, date(2025, time.June, 19))
}

func TestBrazil_ConscienciaNegra_NationalFrom2024(t *testing.T) {
	br := holiday.NewBrazil()

	set2024, err := br.HolidaysFor(2024, "SP")
	require.NoError(t, err)
	assert.Contains(t, set2024, date(2024, time.November, 20))

	// Before 2024 it was not national; SP did not observe it state-wide.
	set2023, err := br.HolidaysFor(2023, "SP")
	require.NoError(t, err)
	assert.NotContains(t, set2023, date(2023, time.November, 20))

	// RJ observed it as a state holiday before the federal law.
	rj2023, err := br.HolidaysFor(2023, "RJ")
	require.NoError(t, err)
	assert.Contains(t, rj2023, date(2023, time.November, 20))
}

func TestBrazil_StateHolidays(t *testing.T) {
	br := holiday.NewBrazil()

	sp, err := br.HolidaysFor(2024, "SP")
	require.NoError(t, err)
	assert.Contains(t, sp, date(2024, time.July, 9), "Revolução Constitucionalista")
	assert.NotContains(t, sp, date(2024, time.July, 2), "Bahia's holiday must not leak into SP")

	ba, err := br.HolidaysFor(2024, "BA")
	require.NoError(t, err)
	assert.Contains(t, ba, date(2024, time.July, 2))
}

func TestBrazil_UnknownState(t *testing.T) {
	br := holiday.NewBrazil()
	_, err := br.HolidaysFor(2024, "XX")
	assert.ErrorIs(t, err, holiday.ErrUnknownState)

	_, err = br.HolidaysFor(2024, "")
	assert.ErrorIs(t, err, holiday.ErrUnknownState)
}

func TestBrazil_Deterministic(t *testing.T) {
	br := holiday.NewBrazil()
	a, err := br.HolidaysFor(2024, "SP")
	require.NoError(t, err)
	b, err := br.HolidaysFor(2024, "SP")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// =============================================================================
// CLASSIFICATION FIXTURES - pinned reference months
// =============================================================================

func TestBrazil_ClassifyJuly2024SP(t *testing.T) {
	// July 2024 in SP: 31 days, 4 Sundays, plus July 9 (Tuesday).
	// 26 workdays, 5 rest days, 22 benefit days.
	cal, err := engine.ClassifyMonth(engine.NewMonth(2024, time.July), "SP", holiday.NewBrazil())
	require.NoError(t, err)

	assert.Equal(t, 26, cal.Workdays)
	assert.Equal(t, 5, cal.RestDays)
	assert.Equal(t, 22, cal.BenefitDays)
}

func TestBrazil_ClassifyApril2024SP(t *testing.T) {
	// April 2024 in SP: Tiradentes (Apr 21) falls on a Sunday, so rest days
	// stay at the 4 Sundays. 26 workdays, 22 benefit days.
	cal, err := engine.ClassifyMonth(engine.NewMonth(2024, time.April), "SP", holiday.NewBrazil())
	require.NoError(t, err)

	assert.Equal(t, 26, cal.Workdays)
	assert.Equal(t, 4, cal.RestDays)
	assert.Equal(t, 22, cal.BenefitDays)
}
