/*
Package sqlite provides the SQLite-backed budget document store.

PURPOSE:
  Persists the household budget document: the single configuration row,
  fixed expenses, and installments. The projection itself is never stored -
  it is recomputed from this document on every request.

KEY TABLES:
  config:          single-row payroll configuration (id is always 1)
  fixed_expenses:  recurring monthly expenses
  installments:    time-windowed monthly obligations

STORAGE FORMAT:
  Amounts are stored as TEXT and parsed through decimal, so values survive
  round-trips exactly. Months are stored as "YYYY-MM" TEXT and parsed back
  into calendar values on load.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/budget.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  budget, err := store.LoadBudget(ctx)

  Use ":memory:" for tests.

SEE ALSO:
  - factory: the matching JSON document shape
  - api/handlers.go: the consuming HTTP layer
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/verde/budget-engine/engine"
)

// ErrNotFound is returned when the requested row does not exist (including a
// database with no configuration saved yet).
var ErrNotFound = errors.New("not found")

// Store persists the budget document in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store at the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Single-row payroll configuration
	CREATE TABLE IF NOT EXISTS config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		salario_base TEXT NOT NULL,
		produtividade_media TEXT NOT NULL,
		meta_investimento TEXT NOT NULL,
		estado_feriados TEXT NOT NULL,
		valor_diario_vt TEXT NOT NULL DEFAULT '0',
		valor_diario_va TEXT NOT NULL DEFAULT '0'
	);

	-- Recurring monthly expenses
	CREATE TABLE IF NOT EXISTS fixed_expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL,
		valor TEXT NOT NULL,
		categoria TEXT NOT NULL
	);

	-- Time-windowed monthly obligations
	CREATE TABLE IF NOT EXISTS installments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL,
		valor_parcela TEXT NOT NULL,
		inicio TEXT NOT NULL,
		fim TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CONFIG
// =============================================================================

// SaveConfig upserts the single configuration row.
func (s *Store) SaveConfig(ctx context.Context, cfg engine.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO config (id, salario_base, produtividade_media, meta_investimento,
		                    estado_feriados, valor_diario_vt, valor_diario_va)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			salario_base = excluded.salario_base,
			produtividade_media = excluded.produtividade_media,
			meta_investimento = excluded.meta_investimento,
			estado_feriados = excluded.estado_feriados,
			valor_diario_vt = excluded.valor_diario_vt,
			valor_diario_va = excluded.valor_diario_va`,
		cfg.BaseSalary.String(), cfg.Productivity.String(), cfg.InvestmentGoal.String(),
		cfg.HolidayRegion, cfg.DailyTransport.String(), cfg.DailyMeal.String())
	return err
}

// LoadConfig returns the configuration, or ErrNotFound if none is saved yet.
func (s *Store) LoadConfig(ctx context.Context) (engine.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadConfigLocked(ctx)
}

func (s *Store) loadConfigLocked(ctx context.Context) (engine.Config, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT salario_base, produtividade_media, meta_investimento,
		       estado_feriados, valor_diario_vt, valor_diario_va
		FROM config WHERE id = 1`)

	var base, prod, goal, vt, va string
	var cfg engine.Config
	if err := row.Scan(&base, &prod, &goal, &cfg.HolidayRegion, &vt, &va); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return engine.Config{}, ErrNotFound
		}
		return engine.Config{}, err
	}

	var err error
	if cfg.BaseSalary, err = engine.ParseMoney(base); err != nil {
		return engine.Config{}, fmt.Errorf("config salario_base: %w", err)
	}
	if cfg.Productivity, err = engine.ParseMoney(prod); err != nil {
		return engine.Config{}, fmt.Errorf("config produtividade_media: %w", err)
	}
	goalMoney, err := engine.ParseMoney(goal)
	if err != nil {
		return engine.Config{}, fmt.Errorf("config meta_investimento: %w", err)
	}
	cfg.InvestmentGoal = goalMoney.Value
	if cfg.DailyTransport, err = engine.ParseMoney(vt); err != nil {
		return engine.Config{}, fmt.Errorf("config valor_diario_vt: %w", err)
	}
	if cfg.DailyMeal, err = engine.ParseMoney(va); err != nil {
		return engine.Config{}, fmt.Errorf("config valor_diario_va: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// FIXED EXPENSES
// =============================================================================

// StoredExpense is a fixed expense with its row id.
type StoredExpense struct {
	ID int64
	engine.FixedExpense
}

// AddExpense inserts an expense and returns its id.
func (s *Store) AddExpense(ctx context.Context, e engine.FixedExpense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO fixed_expenses (nome, valor, categoria) VALUES (?, ?, ?)`,
		e.Name, e.Amount.String(), e.Category)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteExpense removes an expense by id.
func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteByID(ctx, "fixed_expenses", id)
}

// ListExpenses returns all expenses in insertion order.
func (s *Store) ListExpenses(ctx context.Context) ([]StoredExpense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listExpensesLocked(ctx)
}

func (s *Store) listExpensesLocked(ctx context.Context) ([]StoredExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nome, valor, categoria FROM fixed_expenses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredExpense
	for rows.Next() {
		var e StoredExpense
		var valor string
		if err := rows.Scan(&e.ID, &e.Name, &valor, &e.Category); err != nil {
			return nil, err
		}
		if e.Amount, err = engine.ParseMoney(valor); err != nil {
			return nil, fmt.Errorf("expense %d valor: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// INSTALLMENTS
// =============================================================================

// StoredInstallment is an installment with its row id.
type StoredInstallment struct {
	ID int64
	engine.Installment
}

// AddInstallment inserts an installment and returns its id.
func (s *Store) AddInstallment(ctx context.Context, ins engine.Installment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO installments (nome, valor_parcela, inicio, fim) VALUES (?, ?, ?, ?)`,
		ins.Name, ins.Amount.String(), ins.Start.String(), ins.End.String())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteInstallment removes an installment by id.
func (s *Store) DeleteInstallment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteByID(ctx, "installments", id)
}

// ListInstallments returns all installments in insertion order.
func (s *Store) ListInstallments(ctx context.Context) ([]StoredInstallment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listInstallmentsLocked(ctx)
}

func (s *Store) listInstallmentsLocked(ctx context.Context) ([]StoredInstallment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nome, valor_parcela, inicio, fim FROM installments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredInstallment
	for rows.Next() {
		var ins StoredInstallment
		var valor, inicio, fim string
		if err := rows.Scan(&ins.ID, &ins.Name, &valor, &inicio, &fim); err != nil {
			return nil, err
		}
		if ins.Amount, err = engine.ParseMoney(valor); err != nil {
			return nil, fmt.Errorf("installment %d valor_parcela: %w", ins.ID, err)
		}
		if ins.Start, err = engine.ParseMonth(inicio); err != nil {
			return nil, fmt.Errorf("installment %d inicio: %w", ins.ID, err)
		}
		if ins.End, err = engine.ParseMonth(fim); err != nil {
			return nil, fmt.Errorf("installment %d fim: %w", ins.ID, err)
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

// =============================================================================
// WHOLE DOCUMENT
// =============================================================================

// LoadBudget loads the whole document. ErrNotFound if no config is saved.
func (s *Store) LoadBudget(ctx context.Context) (engine.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, err := s.loadConfigLocked(ctx)
	if err != nil {
		return engine.Budget{}, err
	}
	expenses, err := s.listExpensesLocked(ctx)
	if err != nil {
		return engine.Budget{}, err
	}
	installments, err := s.listInstallmentsLocked(ctx)
	if err != nil {
		return engine.Budget{}, err
	}

	b := engine.Budget{Config: cfg}
	for _, e := range expenses {
		b.Expenses = append(b.Expenses, e.FixedExpense)
	}
	for _, ins := range installments {
		b.Installments = append(b.Installments, ins.Installment)
	}
	return b, nil
}

// ReplaceBudget atomically replaces the whole document.
func (s *Store) ReplaceBudget(ctx context.Context, b engine.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fixed_expenses`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM installments`); err != nil {
		return err
	}

	cfg := b.Config
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO config (id, salario_base, produtividade_media, meta_investimento,
		                    estado_feriados, valor_diario_vt, valor_diario_va)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			salario_base = excluded.salario_base,
			produtividade_media = excluded.produtividade_media,
			meta_investimento = excluded.meta_investimento,
			estado_feriados = excluded.estado_feriados,
			valor_diario_vt = excluded.valor_diario_vt,
			valor_diario_va = excluded.valor_diario_va`,
		cfg.BaseSalary.String(), cfg.Productivity.String(), cfg.InvestmentGoal.String(),
		cfg.HolidayRegion, cfg.DailyTransport.String(), cfg.DailyMeal.String()); err != nil {
		return err
	}

	for _, e := range b.Expenses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fixed_expenses (nome, valor, categoria) VALUES (?, ?, ?)`,
			e.Name, e.Amount.String(), e.Category); err != nil {
			return err
		}
	}
	for _, ins := range b.Installments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO installments (nome, valor_parcela, inicio, fim) VALUES (?, ?, ?, ?)`,
			ins.Name, ins.Amount.String(), ins.Start.String(), ins.End.String()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) deleteByID(ctx context.Context, table string, id int64) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
