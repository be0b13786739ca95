package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/verde/budget-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func testConfig(base, productivity string) engine.Config {
	return engine.Config{
		BaseSalary:    engine.MustParseMoney(base),
		Productivity:  engine.MustParseMoney(productivity),
		HolidayRegion: "XX",
	}
}

// =============================================================================
// PAYSLIP TESTS
// =============================================================================

func TestPayslip_FullCalculation(t *testing.T) {
	// GIVEN: base 2000, productivity 500, 20 workdays, 10 rest days
	// WHEN: Computing the payslip
	// THEN: DSR = (500/20)*10 = 250, gross = 2750,
	//       INSS = 228.8196, IRRF base = 2521.1804, IRRF = 19.64853,
	//       net = 2501.53187 — every intermediate retained.

	pc := engine.NewPayrollCalculator(noHolidays())
	p := pc.Payslip(testConfig("2000.00", "500.00"), engine.MonthCalendar{Workdays: 20, RestDays: 10})

	assertMoneyEqual(t, money("250"), p.DSR, "DSR")
	assertMoneyEqual(t, money("2750"), p.Gross, "gross")
	assertMoneyEqual(t, money("228.8196"), p.INSS, "INSS")
	assertMoneyEqual(t, money("19.64853"), p.IRRF, "IRRF")
	assertMoneyEqual(t, money("2501.53187"), p.Net, "net")
	if p.Workdays != 20 || p.RestDays != 10 {
		t.Errorf("day counts not retained: %d/%d", p.Workdays, p.RestDays)
	}
}

func TestPayslip_DocumentedBracketScenario(t *testing.T) {
	// GIVEN: base 2772.00, productivity 542.40, 25 workdays, 6 rest days
	// WHEN: Computing the payslip
	// THEN: DSR = (542.40/25)*6 = 130.176, gross = 3444.576, and the 2024
	//       tables produce exactly the documented withholdings.

	pc := engine.NewPayrollCalculator(noHolidays())
	p := pc.Payslip(testConfig("2772.00", "542.40"), engine.MonthCalendar{Workdays: 25, RestDays: 6})

	assertMoneyEqual(t, money("130.176"), p.DSR, "DSR")
	assertMoneyEqual(t, money("3444.576"), p.Gross, "gross")
	assertMoneyEqual(t, money("312.16872"), p.INSS, "INSS")
	assertMoneyEqual(t, money("88.421092"), p.IRRF, "IRRF")
	assertMoneyEqual(t, money("3043.986188"), p.Net, "net")
}

func TestPayslip_ZeroProductivity_ZeroDSR(t *testing.T) {
	// Property: productivity 0 means DSR 0, whatever the rest-day count.
	pc := engine.NewPayrollCalculator(noHolidays())
	for _, rest := range []int{0, 1, 10, 31} {
		p := pc.Payslip(testConfig("2000.00", "0"), engine.MonthCalendar{Workdays: 20, RestDays: rest})
		if !p.DSR.IsZero() {
			t.Errorf("rest=%d: expected zero DSR, got %s", rest, p.DSR)
		}
	}
}

func TestPayslip_Benefits(t *testing.T) {
	// GIVEN: vt 10.00 and va 20.00 per benefit day, 22 benefit days
	// WHEN: Computing the payslip
	// THEN: benefits = 30*22 = 660, net income = net + 660

	cfg := testConfig("2000.00", "500.00")
	cfg.DailyTransport = money("10.00")
	cfg.DailyMeal = money("20.00")

	pc := engine.NewPayrollCalculator(noHolidays())
	p := pc.Payslip(cfg, engine.MonthCalendar{Workdays: 26, RestDays: 5, BenefitDays: 22})

	assertMoneyEqual(t, money("660"), p.Benefits, "benefits")
	assertMoneyEqual(t, p.Net.Add(money("660")), p.NetIncome, "net income")
}

// =============================================================================
// COMPUTE MONTH TESTS
// =============================================================================

func TestComputeMonth_ClassifiesThenComputes(t *testing.T) {
	// GIVEN: July 2024 with a Tuesday holiday (26 workdays, 5 rest)
	// WHEN: Computing the month
	// THEN: DSR uses the classified counts

	src := &fakeHolidays{region: "XX", dates: []engine.Date{{Year: 2024, Month: time.July, Day: 9}}}
	pc := engine.NewPayrollCalculator(src)

	p, err := pc.ComputeMonth(engine.NewMonth(2024, time.July), testConfig("2772.00", "542.40"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Workdays != 26 || p.RestDays != 5 {
		t.Fatalf("expected 26/5, got %d/%d", p.Workdays, p.RestDays)
	}
	// DSR = (542.40/26)*5
	want := money("542.40").Value.Div(decimal.NewFromInt(26)).Mul(decimal.NewFromInt(5))
	if !p.DSR.Value.Equal(want) {
		t.Errorf("DSR: expected %s, got %s", want, p.DSR)
	}
}

func TestComputeMonth_UnknownRegion_Propagates(t *testing.T) {
	pc := engine.NewPayrollCalculator(noHolidays())
	cfg := testConfig("2000.00", "500.00")
	cfg.HolidayRegion = "ZZ"

	_, err := pc.ComputeMonth(engine.NewMonth(2024, time.July), cfg)
	if !errors.Is(err, engine.ErrInvalidRegion) {
		t.Fatalf("expected ErrInvalidRegion, got %v", err)
	}
}

func TestComputeMonth_NoWorkdays_Fails(t *testing.T) {
	// GIVEN: a holiday source marking every day of February 2024 a holiday
	// WHEN: Computing the month
	// THEN: ErrNoWorkdays naming the offending month, no silent zero DSR

	var all []engine.Date
	for day := 1; day <= 29; day++ {
		all = append(all, engine.Date{Year: 2024, Month: time.February, Day: day})
	}
	pc := engine.NewPayrollCalculator(&fakeHolidays{region: "XX", dates: all})

	_, err := pc.ComputeMonth(engine.NewMonth(2024, time.February), testConfig("2000.00", "500.00"))
	if !errors.Is(err, engine.ErrNoWorkdays) {
		t.Fatalf("expected ErrNoWorkdays, got %v", err)
	}

	var nwErr *engine.NoWorkdaysError
	if !errors.As(err, &nwErr) {
		t.Fatalf("expected *NoWorkdaysError, got %T", err)
	}
	if nwErr.Month.String() != "2024-02" {
		t.Errorf("expected offending month 2024-02, got %s", nwErr.Month)
	}
}
