/*
projection.go - The 12-month projection drive loop

PURPOSE:
  Drives the payroll calculator across twelve consecutive months starting at
  an explicit month (the caller reads the clock, not the engine), folds in
  fixed expenses and time-windowed installments, and emits one Snapshot per
  month in chronological order.

ALL-OR-NOTHING:
  Input is validated before the first month is computed, and any month's
  failure aborts the whole run. Callers receive either twelve snapshots or
  an error, never a partial series.

IDEMPOTENCE:
  Project is a pure function of its inputs. Re-running it on every
  configuration reload is safe and produces identical snapshots.
*/
package engine

// ProjectionMonths is the projection horizon.
const ProjectionMonths = 12

// =============================================================================
// PROJECTION ENGINE
// =============================================================================

// ProjectionEngine projects a budget over the next twelve months.
type ProjectionEngine struct {
	Payroll *PayrollCalculator
}

// NewProjectionEngine builds an engine over the given holiday source.
func NewProjectionEngine(holidays HolidaySource) *ProjectionEngine {
	return &ProjectionEngine{Payroll: NewPayrollCalculator(holidays)}
}

// Project computes twelve consecutive monthly snapshots starting at start.
// On any failure it returns a nil slice and the error; never partial results.
func (pe *ProjectionEngine) Project(cfg Config, expenses []FixedExpense, installments []Installment, start Month) ([]Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, e := range expenses {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	for _, ins := range installments {
		if err := ins.Validate(); err != nil {
			return nil, err
		}
	}

	// Fixed expenses apply unconditionally to every month.
	fixedTotal := ZeroMoney()
	for _, e := range expenses {
		fixedTotal = fixedTotal.Add(e.Amount)
	}

	snapshots := make([]Snapshot, 0, ProjectionMonths)
	for i := 0; i < ProjectionMonths; i++ {
		month := start.AddMonths(i)

		payroll, err := pe.Payroll.ComputeMonth(month, cfg)
		if err != nil {
			return nil, err
		}

		installmentTotal := ZeroMoney()
		var active []string
		for _, ins := range installments {
			if ins.ActiveIn(month) {
				installmentTotal = installmentTotal.Add(ins.Amount)
				active = append(active, ins.Name)
			}
		}

		total := fixedTotal.Add(installmentTotal)
		snapshots = append(snapshots, Snapshot{
			Month:              month,
			Payroll:            payroll,
			FixedTotal:         fixedTotal,
			InstallmentTotal:   installmentTotal,
			TotalExpenses:      total,
			FreeBalance:        payroll.NetIncome.Sub(total),
			InvestmentTarget:   payroll.NetIncome.Mul(cfg.InvestmentGoal),
			ActiveInstallments: active,
		})
	}
	return snapshots, nil
}

// ProjectBudget is a convenience wrapper over Project for a bundled Budget.
func (pe *ProjectionEngine) ProjectBudget(b Budget, start Month) ([]Snapshot, error) {
	return pe.Project(b.Config, b.Expenses, b.Installments, start)
}
