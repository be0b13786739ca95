/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's value types from the external API contract. Document-side
  shapes (config, expenses, installments) reuse the factory's JSON schema,
  so the API and the stored document speak the same field names.

NAMING CONVENTION:
  Wire field names follow the original budget document (Portuguese), the
  same names the persistence format uses.

VALIDATION:
  Request bodies are converted through the factory, which runs the same
  validation the engine requires. DTOs stay pure data carriers.

SEE ALSO:
  - handlers.go: uses these types
  - factory/budget.go: the shared document schema
*/
package api

import (
	"github.com/verde/budget-engine/engine"
	"github.com/verde/budget-engine/factory"
	"github.com/verde/budget-engine/store/sqlite"
)

// =============================================================================
// PROJECTION RESPONSE
// =============================================================================

// SnapshotDTO is one projected month on the wire.
type SnapshotDTO struct {
	Mes            string `json:"mes"`
	DiasUteis      int    `json:"dias_uteis"`
	DiasDescanso   int    `json:"dias_descanso"`
	DiasBeneficios int    `json:"dias_beneficios"`

	DSRValor       engine.Money `json:"dsr_valor"`
	SalarioBruto   engine.Money `json:"salario_bruto"`
	DescontoINSS   engine.Money `json:"desconto_inss"`
	DescontoIRRF   engine.Money `json:"desconto_irrf"`
	SalarioLiquido engine.Money `json:"salario_liquido"`
	Beneficios     engine.Money `json:"beneficios"`
	RendaLiquida   engine.Money `json:"renda_liquida"`

	GastosFixos      engine.Money `json:"gastos_fixos"`
	GastosParcelados engine.Money `json:"gastos_parcelados"`
	GastosTotais     engine.Money `json:"gastos_totais"`
	SaldoLivre       engine.Money `json:"saldo_livre"`
	MetaInvestimento engine.Money `json:"meta_investimento"`

	DetalhesParcelas []string `json:"detalhes_parcelas"`
}

// ProjectionResponse is the full 12-month projection.
type ProjectionResponse struct {
	Inicio string        `json:"inicio"`
	Meses  []SnapshotDTO `json:"meses"`
}

func snapshotDTO(s engine.Snapshot) SnapshotDTO {
	parcelas := s.ActiveInstallments
	if parcelas == nil {
		parcelas = []string{}
	}
	return SnapshotDTO{
		Mes:              s.Month.String(),
		DiasUteis:        s.Payroll.Workdays,
		DiasDescanso:     s.Payroll.RestDays,
		DiasBeneficios:   s.Payroll.BenefitDays,
		DSRValor:         s.Payroll.DSR,
		SalarioBruto:     s.Payroll.Gross,
		DescontoINSS:     s.Payroll.INSS,
		DescontoIRRF:     s.Payroll.IRRF,
		SalarioLiquido:   s.Payroll.Net,
		Beneficios:       s.Payroll.Benefits,
		RendaLiquida:     s.Payroll.NetIncome,
		GastosFixos:      s.FixedTotal,
		GastosParcelados: s.InstallmentTotal,
		GastosTotais:     s.TotalExpenses,
		SaldoLivre:       s.FreeBalance,
		MetaInvestimento: s.InvestmentTarget,
		DetalhesParcelas: parcelas,
	}
}

func projectionResponse(start engine.Month, snaps []engine.Snapshot) ProjectionResponse {
	resp := ProjectionResponse{Inicio: start.String(), Meses: make([]SnapshotDTO, 0, len(snaps))}
	for _, s := range snaps {
		resp.Meses = append(resp.Meses, snapshotDTO(s))
	}
	return resp
}

// =============================================================================
// DOCUMENT-SIDE DTOS
// =============================================================================

// ExpenseDTO is a stored fixed expense with its id.
type ExpenseDTO struct {
	ID int64 `json:"id"`
	factory.ExpenseJSON
}

// InstallmentDTO is a stored installment with its id.
type InstallmentDTO struct {
	ID int64 `json:"id"`
	factory.InstallmentJSON
}

func expenseDTO(e sqlite.StoredExpense) ExpenseDTO {
	return ExpenseDTO{
		ID: e.ID,
		ExpenseJSON: factory.ExpenseJSON{
			Name:     e.Name,
			Amount:   e.Amount.Value,
			Category: e.Category,
		},
	}
}

func installmentDTO(ins sqlite.StoredInstallment) InstallmentDTO {
	return InstallmentDTO{
		ID: ins.ID,
		InstallmentJSON: factory.InstallmentJSON{
			Name:   ins.Name,
			Amount: ins.Amount.Value,
			Start:  ins.Start.String(),
			End:    ins.End.String(),
		},
	}
}

// ErrorResponse is the error envelope for non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// IDResponse acknowledges a created row.
type IDResponse struct {
	ID int64 `json:"id"`
}
