/*
tax.go - Progressive withholding tables (INSS, IRRF)

PURPOSE:
  Evaluates a progressive bracket table against a base amount. Brazilian
  payroll tables publish each bracket as a marginal rate plus a deduction
  constant that linearizes the progressive sum:

    tax = base * bracket.rate - bracket.deduction   (clamped at zero)

  The bracket is the first one whose ceiling is >= base; the top bracket has
  no ceiling and always matches. A base below the first bracket's effective
  floor would go negative, hence the clamp: withholding is never negative.

TABLES:
  INSSTable2024 and IRRFTable2024 build the 2024 tables. The INSS deduction
  constants are the exact linearization of the per-band arithmetic
  (21.18, 101.1804, 181.1810), so band-by-band sums are reproduced exactly.
  Constructors return fresh instances; tables are never shared or mutated.

DETERMINISM:
  Withhold is a pure function of (base, table). Four brackets, linear scan.
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// TAX TABLE - Ordered progressive brackets
// =============================================================================

// TaxBracket is one row of a progressive table. A nil Ceiling marks the
// unbounded top bracket.
type TaxBracket struct {
	Ceiling   *Money
	Rate      decimal.Decimal
	Deduction Money
}

// TaxTable is an ordered bracket table, ascending by ceiling, with the final
// bracket unbounded.
type TaxTable struct {
	Name     string
	Brackets []TaxBracket
}

// Withhold returns the tax withheld on base. Never negative.
func (t TaxTable) Withhold(base Money) Money {
	for _, b := range t.Brackets {
		if b.Ceiling != nil && base.GreaterThan(*b.Ceiling) {
			continue
		}
		tax := base.Mul(b.Rate).Sub(b.Deduction)
		return tax.Max(ZeroMoney())
	}
	// Unreachable with a well-formed table; an empty table withholds nothing.
	return ZeroMoney()
}

// =============================================================================
// 2024 TABLES
// =============================================================================

func bracket(ceiling, rate, deduction string) TaxBracket {
	b := TaxBracket{
		Rate:      decimal.RequireFromString(rate),
		Deduction: MustParseMoney(deduction),
	}
	if ceiling != "" {
		c := MustParseMoney(ceiling)
		b.Ceiling = &c
	}
	return b
}

// INSSTable2024 returns the 2024 progressive social-security table.
func INSSTable2024() TaxTable {
	return TaxTable{
		Name: "INSS 2024",
		Brackets: []TaxBracket{
			bracket("1412.00", "0.075", "0"),
			bracket("2666.68", "0.09", "21.18"),
			bracket("4000.03", "0.12", "101.1804"),
			bracket("", "0.14", "181.1810"),
		},
	}
}

// IRRFTable2024 returns the 2024 income-tax withholding table. Bases at or
// below 2259.20 fall in the first bracket and clamp to zero (exempt range).
func IRRFTable2024() TaxTable {
	return TaxTable{
		Name: "IRRF 2024",
		Brackets: []TaxBracket{
			bracket("2826.65", "0.075", "169.44"),
			bracket("3751.05", "0.15", "381.44"),
			bracket("4664.68", "0.225", "662.77"),
			bracket("", "0.275", "896.00"),
		},
	}
}
