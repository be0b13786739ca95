/*
handlers.go - HTTP API handlers for the budget projection service

PURPOSE:
  Exposes the projection engine and the budget document over REST. Handles
  HTTP request/response and JSON codec work, and delegates everything else
  to the engine, factory, and store.

ENDPOINTS:
  Projection:
    GET    /api/projection             12-month projection from the current
                                       month (?start=YYYY-MM to override)

  Configuration:
    GET    /api/config                 Current payroll configuration
    PUT    /api/config                 Replace configuration

  Expenses:
    GET    /api/expenses               List fixed expenses
    POST   /api/expenses               Add a fixed expense
    DELETE /api/expenses/{id}          Remove a fixed expense

  Installments:
    GET    /api/installments           List installments
    POST   /api/installments           Add an installment
    DELETE /api/installments/{id}      Remove an installment

  Whole document:
    GET    /api/budget                 Export the budget document
    POST   /api/budget                 Import (replace) the budget document

RELOAD MODEL:
  There is no projection state to invalidate: every GET /api/projection
  recomputes the twelve months from the stored document. Editing the
  document and re-fetching IS the reload.

ERROR HANDLING:
  - 400: malformed input, validation failures (engine client errors)
  - 404: unknown row, no configuration saved yet
  - 422: holiday region not recognized
  - 500: everything else

SEE ALSO:
  - dto.go: wire shapes
  - server.go: router setup and middleware
*/
package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/verde/budget-engine/engine"
	"github.com/verde/budget-engine/factory"
	"github.com/verde/budget-engine/holiday"
	"github.com/verde/budget-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *sqlite.Store
	Projection *engine.ProjectionEngine
	Log        *logrus.Logger
}

// NewHandler builds a handler over the store, projecting with the Brazilian
// holiday calendar.
func NewHandler(store *sqlite.Store, log *logrus.Logger) *Handler {
	return &Handler{
		Store:      store,
		Projection: engine.NewProjectionEngine(holiday.NewBrazil()),
		Log:        log,
	}
}

// =============================================================================
// PROJECTION
// =============================================================================

// GetProjection recomputes and returns the 12-month projection.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	start := engine.CurrentMonth()
	if q := r.URL.Query().Get("start"); q != "" {
		m, err := engine.ParseMonth(q)
		if err != nil {
			h.writeErrorStatus(w, http.StatusBadRequest, "invalid start month, want YYYY-MM")
			return
		}
		start = m
	}

	budget, err := h.Store.LoadBudget(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	snaps, err := h.Projection.ProjectBudget(budget, start)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"start":  start.String(),
		"months": len(snaps),
	}).Info("projection computed")
	h.respondJSON(w, http.StatusOK, projectionResponse(start, snaps))
}

// =============================================================================
// CONFIGURATION
// =============================================================================

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Store.LoadConfig(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, factory.DocumentFor(engine.Budget{Config: cfg}).Config)
}

func (h *Handler) PutConfig(w http.ResponseWriter, r *http.Request) {
	var doc factory.ConfigJSON
	if !h.decode(w, r, &doc) {
		return
	}

	cfg := engine.Config{
		BaseSalary:     engine.Money{Value: doc.BaseSalary},
		Productivity:   engine.Money{Value: doc.Productivity},
		InvestmentGoal: doc.InvestmentGoal,
		HolidayRegion:  doc.HolidayState,
		DailyTransport: engine.Money{Value: doc.DailyTransport},
		DailyMeal:      engine.Money{Value: doc.DailyMeal},
	}
	if err := cfg.Validate(); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.Store.SaveConfig(r.Context(), cfg); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, doc)
}

// =============================================================================
// FIXED EXPENSES
// =============================================================================

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Store.ListExpenses(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, expenseDTO(e))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var doc factory.ExpenseJSON
	if !h.decode(w, r, &doc) {
		return
	}

	expense := engine.FixedExpense{
		Name:     doc.Name,
		Amount:   engine.Money{Value: doc.Amount},
		Category: doc.Category,
	}
	if err := expense.Validate(); err != nil {
		h.writeError(w, err)
		return
	}
	id, err := h.Store.AddExpense(r.Context(), expense)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteExpense(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// INSTALLMENTS
// =============================================================================

func (h *Handler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	installments, err := h.Store.ListInstallments(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]InstallmentDTO, 0, len(installments))
	for _, ins := range installments {
		out = append(out, installmentDTO(ins))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateInstallment(w http.ResponseWriter, r *http.Request) {
	var doc factory.InstallmentJSON
	if !h.decode(w, r, &doc) {
		return
	}

	ins, err := factory.BuildInstallment(doc)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := h.Store.AddInstallment(r.Context(), ins)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) DeleteInstallment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteInstallment(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// WHOLE DOCUMENT
// =============================================================================

func (h *Handler) ExportBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := h.Store.LoadBudget(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, factory.DocumentFor(budget))
}

// ImportBudget replaces the whole stored document with the posted one.
func (h *Handler) ImportBudget(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeErrorStatus(w, http.StatusBadRequest, "unreadable request body")
		return
	}
	budget, err := factory.ParseBudget(raw)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.Store.ReplaceBudget(r.Context(), budget); err != nil {
		h.writeError(w, err)
		return
	}
	h.Log.WithFields(logrus.Fields{
		"expenses":     len(budget.Expenses),
		"installments": len(budget.Installments),
	}).Info("budget document replaced")
	h.respondJSON(w, http.StatusOK, factory.DocumentFor(budget))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeErrorStatus(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.WithError(err).Error("encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidRegion):
		h.respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: "invalid_region"})
	case errors.Is(err, engine.ErrMalformedInstallment):
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "malformed_installment"})
	case engine.IsClientError(err):
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "invalid_input"})
	case errors.Is(err, sqlite.ErrNotFound):
		h.respondJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: "not_found"})
	default:
		h.Log.WithError(err).Error("internal error")
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *Handler) writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, ErrorResponse{Error: msg})
}
