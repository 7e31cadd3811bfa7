// Package sqlite stores FarmFlow records in a local SQLite database.
//
// Amounts and dates are kept as TEXT exactly as validated, so decimal
// precision survives and a date that cannot be parsed is still shown.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"farmflow/internal/core"
	"farmflow/internal/store"
)

var (
	_ store.FinancialStore = (*Repository)(nil)
	_ store.FarmStore      = (*Repository)(nil)
	_ store.CropStore      = (*Repository)(nil)
	_ store.TaskStore      = (*Repository)(nil)
)

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the database file if needed and runs migrations.
func Open(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Repository{db: db, now: time.Now}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) stamp() string {
	return core.DateOf(r.now()).String()
}

const entryColumns = `id, farm_id, type, amount, category, description, date, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (core.FinancialEntry, error) {
	var e core.FinancialEntry
	var typ, amount, date, stamp string
	if err := row.Scan(&e.ID, &e.FarmID, &typ, &amount, &e.Category, &e.Description, &date, &stamp); err != nil {
		return core.FinancialEntry{}, err
	}
	e.Type = core.EntryType(typ)
	e.Amount = core.ParseAmount(amount)
	e.Date = core.ParseDate(date)
	e.CreatedAt = core.ParseDate(stamp)
	return e, nil
}

func (r *Repository) queryEntries(ctx context.Context, query string, args ...any) ([]core.FinancialEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	out := []core.FinancialEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) ListEntries(ctx context.Context) ([]core.FinancialEntry, error) {
	return r.queryEntries(ctx, `SELECT `+entryColumns+` FROM financial_entries ORDER BY id`)
}

func (r *Repository) ListEntriesByFarm(ctx context.Context, farmID string) ([]core.FinancialEntry, error) {
	return r.queryEntries(ctx, `SELECT `+entryColumns+` FROM financial_entries WHERE farm_id = ? ORDER BY id`, farmID)
}

func (r *Repository) GetEntry(ctx context.Context, id int64) (core.FinancialEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM financial_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.FinancialEntry{}, core.NotFound("financial entry", id)
	}
	if err != nil {
		return core.FinancialEntry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	return e, nil
}

func (r *Repository) CreateEntry(ctx context.Context, d core.EntryDraft) (core.FinancialEntry, error) {
	e, err := d.Entry()
	if err != nil {
		return core.FinancialEntry{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO financial_entries (farm_id, type, amount, category, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.FarmID, string(e.Type), e.Amount.String(), e.Category, e.Description, e.Date.String(), r.stamp())
	if err != nil {
		return core.FinancialEntry{}, fmt.Errorf("create entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.FinancialEntry{}, fmt.Errorf("create entry: %w", err)
	}

	slog.InfoContext(ctx, "Financial entry saved to SQLite",
		"id", id,
		"type", e.Type,
		"amount", e.Amount.String(),
		"category", e.Category)

	return r.GetEntry(ctx, id)
}

func (r *Repository) UpdateEntry(ctx context.Context, id int64, d core.EntryDraft) (core.FinancialEntry, error) {
	if _, err := r.GetEntry(ctx, id); err != nil {
		return core.FinancialEntry{}, err
	}
	e, err := d.Entry()
	if err != nil {
		return core.FinancialEntry{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE financial_entries
		 SET farm_id = ?, type = ?, amount = ?, category = ?, description = ?, date = ?
		 WHERE id = ?`,
		e.FarmID, string(e.Type), e.Amount.String(), e.Category, e.Description, e.Date.String(), id)
	if err := affected(res, err, "financial entry", id); err != nil {
		return core.FinancialEntry{}, err
	}
	return r.GetEntry(ctx, id)
}

func (r *Repository) DeleteEntry(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM financial_entries WHERE id = ?`, id)
	if err := affected(res, err, "financial entry", id); err != nil {
		return 0, err
	}
	return id, nil
}

// Summary reads every amount and sums in decimal; SQLite arithmetic on TEXT
// would go through floating point.
func (r *Repository) Summary(ctx context.Context) (core.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, amount FROM financial_entries`)
	if err != nil {
		return core.Summary{}, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var entries []core.FinancialEntry
	for rows.Next() {
		var typ, amount string
		if err := rows.Scan(&typ, &amount); err != nil {
			return core.Summary{}, fmt.Errorf("scan summary: %w", err)
		}
		entries = append(entries, core.FinancialEntry{Type: core.EntryType(typ), Amount: core.ParseAmount(amount)})
	}
	if err := rows.Err(); err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(entries), nil
}

// affected maps a zero-row write to NotFound.
func affected(res sql.Result, err error, kind string, id int64) error {
	if err != nil {
		return fmt.Errorf("write %s %d: %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write %s %d: %w", kind, id, err)
	}
	if n == 0 {
		return core.NotFound(kind, id)
	}
	return nil
}
