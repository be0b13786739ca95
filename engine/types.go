/*
Package engine is the household payroll and budget projection engine.

PURPOSE:
  Turns a small immutable configuration (base salary, average productivity,
  holiday region, fixed expenses, installment windows) into twelve monthly
  financial snapshots: gross and net salary under Brazilian payroll rules
  (DSR weekly-rest compensation, progressive INSS and IRRF withholding),
  expense totals, and the free balance left each month.

KEY CONCEPTS IN THIS FILE (types.go):
  - Config: the per-run payroll configuration, passed by value, never mutated
  - FixedExpense: a recurring monthly expense, applied to every month
  - Installment: a monthly obligation active only inside a [start, end] window
  - MonthlyPayroll: one month's payslip with every intermediate figure
  - Snapshot: one projected month (payroll + expense totals + free balance)

DESIGN PRINCIPLES:
  1. Purity: every operation is a function of its explicit inputs; the engine
     reads no clock, holds no state, and performs no I/O
  2. Precision: all currency math uses decimal.Decimal via Money
  3. Fail loud: invalid input or inconsistent calendar data aborts the whole
     projection; there are no partial results and no silent defaults

USAGE:
  eng := engine.NewProjectionEngine(holidaySource)
  snaps, err := eng.Project(cfg, expenses, installments, engine.CurrentMonth())

SEE ALSO:
  - calendar.go: workday / rest-day classification
  - tax.go: progressive withholding tables (INSS, IRRF)
  - payroll.go: one month's payslip
  - projection.go: the 12-month drive loop
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONFIG - Immutable per-run payroll configuration
// =============================================================================

// Config is the payroll configuration for one projection run. The engine
// receives it by value and never mutates it.
type Config struct {
	// BaseSalary is the fixed monthly salary component. Must be positive.
	BaseSalary Money

	// Productivity is the expected monthly variable (productivity) pay.
	Productivity Money

	// InvestmentGoal is the fraction of net income the household wants to
	// invest, in [0, 1]. Reported per month, never subtracted from the free
	// balance.
	InvestmentGoal decimal.Decimal

	// HolidayRegion is the region code (Brazilian UF, e.g. "SP") used for
	// holiday lookup.
	HolidayRegion string

	// DailyTransport and DailyMeal are per-benefit-day voucher values
	// (vale-transporte / vale-alimentação). Zero disables them.
	DailyTransport Money
	DailyMeal      Money
}

func (c Config) Validate() error {
	if !c.BaseSalary.IsPositive() {
		return &InvalidConfigError{Field: "salario_base", Reason: "must be positive"}
	}
	if c.Productivity.IsNegative() {
		return &InvalidConfigError{Field: "produtividade_media", Reason: "must not be negative"}
	}
	one := decimal.NewFromInt(1)
	if c.InvestmentGoal.IsNegative() || c.InvestmentGoal.GreaterThan(one) {
		return &InvalidConfigError{Field: "meta_investimento_percentual", Reason: "must be a fraction in [0,1]"}
	}
	if c.HolidayRegion == "" {
		return &InvalidConfigError{Field: "estado_feriados", Reason: "must be set"}
	}
	if c.DailyTransport.IsNegative() {
		return &InvalidConfigError{Field: "valor_diario_vt", Reason: "must not be negative"}
	}
	if c.DailyMeal.IsNegative() {
		return &InvalidConfigError{Field: "valor_diario_va", Reason: "must not be negative"}
	}
	return nil
}

// =============================================================================
// EXPENSES AND INSTALLMENTS
// =============================================================================

// FixedExpense is a recurring expense charged in full every projected month.
type FixedExpense struct {
	Name     string
	Amount   Money // >= 0
	Category string
}

func (f FixedExpense) Validate() error {
	if f.Amount.IsNegative() {
		return &InvalidConfigError{Field: "gasto fixo " + f.Name, Reason: "amount must not be negative"}
	}
	return nil
}

// Installment is a monthly obligation active only inside its month window.
// Both ends are inclusive: an installment with Start == End is charged in
// exactly one month.
type Installment struct {
	Name   string
	Amount Money // per-month amount, >= 0
	Start  Month
	End    Month
}

// ActiveIn reports whether the installment is charged in month m.
func (i Installment) ActiveIn(m Month) bool {
	return i.Start.BeforeOrEqual(m) && m.BeforeOrEqual(i.End)
}

func (i Installment) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return &MalformedInstallmentError{Name: i.Name, Reason: "missing start or end month"}
	}
	if i.Start.After(i.End) {
		return &MalformedInstallmentError{Name: i.Name, Reason: "start month after end month"}
	}
	if i.Amount.IsNegative() {
		return &MalformedInstallmentError{Name: i.Name, Reason: "amount must not be negative"}
	}
	return nil
}

// Budget bundles everything a projection run needs. Convenience carrier for
// the persistence and API layers; the engine takes the parts explicitly.
type Budget struct {
	Config       Config
	Expenses     []FixedExpense
	Installments []Installment
}

func (b Budget) Validate() error {
	if err := b.Config.Validate(); err != nil {
		return err
	}
	for _, e := range b.Expenses {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, ins := range b.Installments {
		if err := ins.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// MONTHLY PAYROLL - One month's payslip, every intermediate retained
// =============================================================================

// MonthlyPayroll is the full payslip for one month. Intermediates are kept so
// the presentation layer and tests can audit each step independently.
type MonthlyPayroll struct {
	Workdays    int // Mon-Sat minus holidays
	RestDays    int // Sundays plus holidays
	BenefitDays int // Mon-Fri minus holidays (voucher-paid days)

	DSR      Money // weekly-rest compensation: (productivity / workdays) * rest days
	Gross    Money // base + productivity + DSR
	INSS     Money // social-security withholding on gross
	IRRF     Money // income-tax withholding on (gross - INSS)
	Net      Money // gross - INSS - IRRF
	Benefits Money // (daily transport + daily meal) * benefit days

	// NetIncome is what actually lands in the household's pocket:
	// net salary plus benefits.
	NetIncome Money
}

// =============================================================================
// SNAPSHOT - One projected month
// =============================================================================

// Snapshot is one month of the projection. The engine returns twelve of them
// in chronological order and never mutates them afterwards.
type Snapshot struct {
	Month   Month
	Payroll MonthlyPayroll

	FixedTotal       Money
	InstallmentTotal Money
	TotalExpenses    Money // fixed + installments

	// FreeBalance = NetIncome - TotalExpenses.
	FreeBalance Money

	// InvestmentTarget = NetIncome * Config.InvestmentGoal. Informational;
	// not subtracted from FreeBalance.
	InvestmentTarget Money

	// ActiveInstallments lists the names of installments charged this month,
	// in input order.
	ActiveInstallments []string
}
