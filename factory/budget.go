/*
Package factory provides JSON budget-document conversion.

PURPOSE:
  Converts the budget document (the household's stored configuration) into
  fully validated engine values, and back. The engine never sees raw JSON:
  everything is parsed and validated here, at the boundary, so a malformed
  installment can never silently corrupt a projected month.

JSON SCHEMA:
  {
    "configuracao": {
      "salario_base": 2772.00,
      "produtividade_media": 542.40,
      "meta_investimento_percentual": 0.20,
      "estado_feriados": "SP",
      "valor_diario_vt": 10.00,
      "valor_diario_va": 20.00
    },
    "gastos_fixos": [
      {"nome": "Aluguel", "valor": 1200.00, "categoria": "Moradia"}
    ],
    "parcelamentos": [
      {"nome": "Notebook", "valor_parcela": 250.00,
       "inicio": "2024-11", "fim": "2025-02"}
    ]
  }

KEY FEATURES:
  - Amounts decode through decimal, never float64
  - valor_diario_vt / valor_diario_va default to zero when absent
  - Month windows are parsed into calendar values here; "start after end"
    and unparseable months surface as engine.ErrMalformedInstallment
  - EncodeBudget round-trips the document for the store and the API

USAGE:
  budget, err := factory.ParseBudget(raw)
  if err != nil { ... }
  snaps, err := eng.ProjectBudget(budget, engine.CurrentMonth())

SEE ALSO:
  - engine/types.go: the validated value types
  - store/sqlite: persists the same document shape
*/
package factory

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/verde/budget-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// BudgetJSON is the stored document shape.
type BudgetJSON struct {
	Config       ConfigJSON        `json:"configuracao"`
	Expenses     []ExpenseJSON     `json:"gastos_fixos"`
	Installments []InstallmentJSON `json:"parcelamentos"`
}

type ConfigJSON struct {
	BaseSalary     decimal.Decimal `json:"salario_base"`
	Productivity   decimal.Decimal `json:"produtividade_media"`
	InvestmentGoal decimal.Decimal `json:"meta_investimento_percentual"`
	HolidayState   string          `json:"estado_feriados"`
	DailyTransport decimal.Decimal `json:"valor_diario_vt"`
	DailyMeal      decimal.Decimal `json:"valor_diario_va"`
}

type ExpenseJSON struct {
	Name     string          `json:"nome"`
	Amount   decimal.Decimal `json:"valor"`
	Category string          `json:"categoria"`
}

type InstallmentJSON struct {
	Name   string          `json:"nome"`
	Amount decimal.Decimal `json:"valor_parcela"`
	Start  string          `json:"inicio"`
	End    string          `json:"fim"`
}

// =============================================================================
// PARSE - JSON document to validated engine values
// =============================================================================

// ParseBudget decodes and validates a budget document.
func ParseBudget(data []byte) (engine.Budget, error) {
	var doc BudgetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return engine.Budget{}, fmt.Errorf("decode budget document: %w", err)
	}
	return BuildBudget(doc)
}

// BuildBudget converts an already-decoded document into validated values.
func BuildBudget(doc BudgetJSON) (engine.Budget, error) {
	b := engine.Budget{
		Config: engine.Config{
			BaseSalary:     engine.Money{Value: doc.Config.BaseSalary},
			Productivity:   engine.Money{Value: doc.Config.Productivity},
			InvestmentGoal: doc.Config.InvestmentGoal,
			HolidayRegion:  doc.Config.HolidayState,
			DailyTransport: engine.Money{Value: doc.Config.DailyTransport},
			DailyMeal:      engine.Money{Value: doc.Config.DailyMeal},
		},
	}

	for _, e := range doc.Expenses {
		b.Expenses = append(b.Expenses, engine.FixedExpense{
			Name:     e.Name,
			Amount:   engine.Money{Value: e.Amount},
			Category: e.Category,
		})
	}

	for _, p := range doc.Installments {
		ins, err := BuildInstallment(p)
		if err != nil {
			return engine.Budget{}, err
		}
		b.Installments = append(b.Installments, ins)
	}

	if err := b.Validate(); err != nil {
		return engine.Budget{}, err
	}
	return b, nil
}

// BuildInstallment parses one installment entry, surfacing unparseable month
// strings as malformed-installment errors.
func BuildInstallment(p InstallmentJSON) (engine.Installment, error) {
	start, err := engine.ParseMonth(p.Start)
	if err != nil {
		return engine.Installment{}, &engine.MalformedInstallmentError{
			Name:   p.Name,
			Reason: fmt.Sprintf("unparseable start month %q", p.Start),
		}
	}
	end, err := engine.ParseMonth(p.End)
	if err != nil {
		return engine.Installment{}, &engine.MalformedInstallmentError{
			Name:   p.Name,
			Reason: fmt.Sprintf("unparseable end month %q", p.End),
		}
	}
	ins := engine.Installment{
		Name:   p.Name,
		Amount: engine.Money{Value: p.Amount},
		Start:  start,
		End:    end,
	}
	if err := ins.Validate(); err != nil {
		return engine.Installment{}, err
	}
	return ins, nil
}

// =============================================================================
// ENCODE - Engine values back to the document shape
// =============================================================================

// DocumentFor converts engine values to the document shape.
func DocumentFor(b engine.Budget) BudgetJSON {
	doc := BudgetJSON{
		Config: ConfigJSON{
			BaseSalary:     b.Config.BaseSalary.Value,
			Productivity:   b.Config.Productivity.Value,
			InvestmentGoal: b.Config.InvestmentGoal,
			HolidayState:   b.Config.HolidayRegion,
			DailyTransport: b.Config.DailyTransport.Value,
			DailyMeal:      b.Config.DailyMeal.Value,
		},
		Expenses:     []ExpenseJSON{},
		Installments: []InstallmentJSON{},
	}
	for _, e := range b.Expenses {
		doc.Expenses = append(doc.Expenses, ExpenseJSON{
			Name:     e.Name,
			Amount:   e.Amount.Value,
			Category: e.Category,
		})
	}
	for _, ins := range b.Installments {
		doc.Installments = append(doc.Installments, InstallmentJSON{
			Name:   ins.Name,
			Amount: ins.Amount.Value,
			Start:  ins.Start.String(),
			End:    ins.End.String(),
		})
	}
	return doc
}

// EncodeBudget serializes a budget back into document JSON.
func EncodeBudget(b engine.Budget) ([]byte, error) {
	return json.MarshalIndent(DocumentFor(b), "", "  ")
}
