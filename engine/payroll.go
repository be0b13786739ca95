/*
payroll.go - One month's payslip

PURPOSE:
  Combines base salary, productivity, and DSR into gross and net salary for
  a single month:

    1. Classify the month's days (calendar.go)
    2. DSR = (productivity / workdays) * rest days
    3. Gross = base + productivity + DSR
    4. INSS  = INSS table applied to gross
    5. IRRF  = IRRF table applied to (gross - INSS)
    6. Net   = gross - INSS - IRRF
    7. Benefits = (daily transport + daily meal) * benefit days

  A month with zero workdays fails with ErrNoWorkdays: that only happens on
  inconsistent holiday data, and a silent zero DSR would corrupt the whole
  projection.

SEE ALSO:
  - tax.go: the two withholding tables
  - projection.go: drives this across twelve months
*/
package engine

// =============================================================================
// PAYROLL CALCULATOR
// =============================================================================

// PayrollCalculator computes monthly payslips. It owns its two withholding
// table instances; they are never shared between calculators.
type PayrollCalculator struct {
	Holidays HolidaySource
	INSS     TaxTable
	IRRF     TaxTable
}

// NewPayrollCalculator builds a calculator over the 2024 tables.
func NewPayrollCalculator(holidays HolidaySource) *PayrollCalculator {
	return &PayrollCalculator{
		Holidays: holidays,
		INSS:     INSSTable2024(),
		IRRF:     IRRFTable2024(),
	}
}

// ComputeMonth classifies month m and computes its payslip.
// Fails fast on an unknown region or a zero-workday month.
func (pc *PayrollCalculator) ComputeMonth(m Month, cfg Config) (MonthlyPayroll, error) {
	cal, err := ClassifyMonth(m, cfg.HolidayRegion, pc.Holidays)
	if err != nil {
		return MonthlyPayroll{}, err
	}
	if cal.Workdays == 0 {
		return MonthlyPayroll{}, &NoWorkdaysError{Month: m}
	}
	return pc.Payslip(cfg, cal), nil
}

// Payslip computes the payslip for an already-classified month.
// cal.Workdays must be positive.
func (pc *PayrollCalculator) Payslip(cfg Config, cal MonthCalendar) MonthlyPayroll {
	dsr := cfg.Productivity.DivInt(cal.Workdays).MulInt(cal.RestDays)
	gross := cfg.BaseSalary.Add(cfg.Productivity).Add(dsr)

	inss := pc.INSS.Withhold(gross)
	irrfBase := gross.Sub(inss)
	irrf := pc.IRRF.Withhold(irrfBase)

	net := gross.Sub(inss).Sub(irrf)
	benefits := cfg.DailyTransport.Add(cfg.DailyMeal).MulInt(cal.BenefitDays)

	return MonthlyPayroll{
		Workdays:    cal.Workdays,
		RestDays:    cal.RestDays,
		BenefitDays: cal.BenefitDays,
		DSR:         dsr,
		Gross:       gross,
		INSS:        inss,
		IRRF:        irrf,
		Net:         net,
		Benefits:    benefits,
		NetIncome:   net.Add(benefits),
	}
}
