package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/verde/budget-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func projectionEngine() *engine.ProjectionEngine {
	return engine.NewProjectionEngine(noHolidays())
}

func expense(name, amount string) engine.FixedExpense {
	return engine.FixedExpense{Name: name, Amount: money(amount), Category: "test"}
}

func installment(t *testing.T, name, amount, start, end string) engine.Installment {
	t.Helper()
	return engine.Installment{
		Name:   name,
		Amount: money(amount),
		Start:  mustMonth(t, start),
		End:    mustMonth(t, end),
	}
}

// =============================================================================
// PROJECTION TESTS
// =============================================================================

func TestProject_TwelveChronologicalMonths(t *testing.T) {
	// GIVEN: a valid budget starting August 2024
	// WHEN: Projecting
	// THEN: 12 snapshots, in order, rolling into 2025

	snaps, err := projectionEngine().Project(testConfig("2000.00", "500.00"), nil, nil, mustMonth(t, "2024-08"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snaps) != engine.ProjectionMonths {
		t.Fatalf("expected %d snapshots, got %d", engine.ProjectionMonths, len(snaps))
	}
	if snaps[0].Month.String() != "2024-08" {
		t.Errorf("expected first month 2024-08, got %s", snaps[0].Month)
	}
	if snaps[11].Month.String() != "2025-07" {
		t.Errorf("expected last month 2025-07, got %s", snaps[11].Month)
	}
	for i := 1; i < len(snaps); i++ {
		if !snaps[i-1].Month.Next().Equal(snaps[i].Month) {
			t.Errorf("months not consecutive at index %d: %s -> %s",
				i, snaps[i-1].Month, snaps[i].Month)
		}
	}
}

func TestProject_FixedExpenses_EveryMonth(t *testing.T) {
	// GIVEN: one fixed expense of 1200.00 and no installments
	// WHEN: Projecting
	// THEN: every month's free balance = net income - 1200.00

	snaps, err := projectionEngine().Project(
		testConfig("2772.00", "542.40"),
		[]engine.FixedExpense{expense("Aluguel", "1200.00")},
		nil,
		mustMonth(t, "2024-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range snaps {
		assertMoneyEqual(t, money("1200.00"), s.FixedTotal, s.Month.String()+" fixed total")
		assertMoneyEqual(t, s.Payroll.NetIncome.Sub(money("1200.00")), s.FreeBalance,
			s.Month.String()+" free balance")
	}
}

func TestProject_InstallmentWindow_AcrossYearBoundary(t *testing.T) {
	// GIVEN: an installment spanning 2024-11 .. 2025-02
	// WHEN: Projecting from 2024-10
	// THEN: active in 2024-11 through 2025-02 (calendar ordering), with the
	//       name listed, and inactive before and after

	snaps, err := projectionEngine().Project(
		testConfig("2000.00", "500.00"),
		nil,
		[]engine.Installment{installment(t, "Notebook", "250.00", "2024-11", "2025-02")},
		mustMonth(t, "2024-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	activeMonths := map[string]bool{
		"2024-11": true, "2024-12": true, "2025-01": true, "2025-02": true,
	}
	for _, s := range snaps {
		if activeMonths[s.Month.String()] {
			assertMoneyEqual(t, money("250.00"), s.InstallmentTotal, s.Month.String())
			if len(s.ActiveInstallments) != 1 || s.ActiveInstallments[0] != "Notebook" {
				t.Errorf("%s: expected active [Notebook], got %v", s.Month, s.ActiveInstallments)
			}
		} else {
			if !s.InstallmentTotal.IsZero() {
				t.Errorf("%s: expected no installment charge, got %s", s.Month, s.InstallmentTotal)
			}
			if len(s.ActiveInstallments) != 0 {
				t.Errorf("%s: expected no active installments, got %v", s.Month, s.ActiveInstallments)
			}
		}
	}
}

func TestProject_SingleMonthInstallment_FirstMonthOnly(t *testing.T) {
	// Boundary: start = end = the first projected month -> charged exactly once.
	snaps, err := projectionEngine().Project(
		testConfig("2000.00", "500.00"),
		nil,
		[]engine.Installment{installment(t, "Conserto", "300.00", "2024-07", "2024-07")},
		mustMonth(t, "2024-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMoneyEqual(t, money("300.00"), snaps[0].InstallmentTotal, "first month")
	for _, s := range snaps[1:] {
		if !s.InstallmentTotal.IsZero() {
			t.Errorf("%s: expected zero, got %s", s.Month, s.InstallmentTotal)
		}
	}
}

func TestProject_Idempotent(t *testing.T) {
	// Property: identical inputs produce identical snapshot sequences.
	cfg := testConfig("2772.00", "542.40")
	expenses := []engine.FixedExpense{expense("Aluguel", "1200.00"), expense("Internet", "99.90")}
	installments := []engine.Installment{installment(t, "Sofá", "180.00", "2024-09", "2025-03")}
	start := mustMonth(t, "2024-07")

	eng := projectionEngine()
	a, err := eng.Project(cfg, expenses, installments, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := eng.Project(cfg, expenses, installments, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range a {
		if !a[i].Month.Equal(b[i].Month) ||
			!a[i].FreeBalance.Equal(b[i].FreeBalance) ||
			!a[i].Payroll.Net.Equal(b[i].Payroll.Net) ||
			!a[i].TotalExpenses.Equal(b[i].TotalExpenses) {
			t.Errorf("run mismatch at %s", a[i].Month)
		}
	}
}

func TestProject_InvestmentTarget_Informational(t *testing.T) {
	// GIVEN: investment goal 20%
	// WHEN: Projecting
	// THEN: target = net income * 0.20, and the free balance ignores it

	cfg := testConfig("2000.00", "500.00")
	cfg.InvestmentGoal = money("0.20").Value

	snaps, err := projectionEngine().Project(cfg, nil, nil, mustMonth(t, "2024-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range snaps {
		assertMoneyEqual(t, s.Payroll.NetIncome.Mul(cfg.InvestmentGoal), s.InvestmentTarget,
			s.Month.String()+" investment target")
		assertMoneyEqual(t, s.Payroll.NetIncome.Sub(s.TotalExpenses), s.FreeBalance,
			s.Month.String()+" free balance unaffected")
	}
}

// =============================================================================
// FAILURE TESTS - No partial results
// =============================================================================

func TestProject_UnknownRegion_NoPartialResults(t *testing.T) {
	cfg := testConfig("2000.00", "500.00")
	cfg.HolidayRegion = "ZZ"

	snaps, err := projectionEngine().Project(cfg, nil, nil, mustMonth(t, "2024-07"))
	if !errors.Is(err, engine.ErrInvalidRegion) {
		t.Fatalf("expected ErrInvalidRegion, got %v", err)
	}
	if snaps != nil {
		t.Errorf("expected no snapshots on failure, got %d", len(snaps))
	}
}

func TestProject_MalformedInstallment_RejectedBeforeComputing(t *testing.T) {
	// GIVEN: an installment with start after end
	// WHEN: Projecting
	// THEN: ErrMalformedInstallment, nothing computed

	snaps, err := projectionEngine().Project(
		testConfig("2000.00", "500.00"),
		nil,
		[]engine.Installment{installment(t, "Inverted", "100.00", "2025-03", "2024-11")},
		mustMonth(t, "2024-07"))
	if !errors.Is(err, engine.ErrMalformedInstallment) {
		t.Fatalf("expected ErrMalformedInstallment, got %v", err)
	}
	if snaps != nil {
		t.Errorf("expected no snapshots, got %d", len(snaps))
	}
}

func TestProject_InvalidConfig_Rejected(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*engine.Config)
	}{
		{"zero base salary", func(c *engine.Config) { c.BaseSalary = engine.ZeroMoney() }},
		{"negative productivity", func(c *engine.Config) { c.Productivity = money("-1") }},
		{"goal above one", func(c *engine.Config) { c.InvestmentGoal = money("1.5").Value }},
		{"empty region", func(c *engine.Config) { c.HolidayRegion = "" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig("2000.00", "500.00")
			c.mutate(&cfg)
			_, err := projectionEngine().Project(cfg, nil, nil, mustMonth(t, "2024-07"))
			if !errors.Is(err, engine.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestProject_BudgetWrapper(t *testing.T) {
	b := engine.Budget{
		Config:   testConfig("2000.00", "500.00"),
		Expenses: []engine.FixedExpense{expense("Luz", "150.00")},
	}
	snaps, err := projectionEngine().ProjectBudget(b, engine.NewMonth(2024, time.July))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snaps) != 12 {
		t.Fatalf("expected 12 snapshots, got %d", len(snaps))
	}
}
