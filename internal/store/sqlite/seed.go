package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"farmflow/internal/store/fixtures"
)

// SeedIfEmpty loads seed into an empty database. Ids are kept, and
// AUTOINCREMENT continues after the highest one.
func (r *Repository) SeedIfEmpty(ctx context.Context, seed fixtures.Seed) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM farms`).Scan(&n); err != nil {
		return fmt.Errorf("count farms: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, f := range seed.Farms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO farms (id, name, location, size, size_unit, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.Location, f.Size.String(), string(f.SizeUnit), f.CreatedAt.String()); err != nil {
			return fmt.Errorf("seed farm %d: %w", f.ID, err)
		}
	}
	for _, c := range seed.Crops {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO crops (id, farm_id, crop_type, field_location, planting_date, expected_harvest_date, status, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.FarmID, c.CropType, c.FieldLocation, c.PlantingDate.String(), c.ExpectedHarvestDate.String(),
			string(c.Status), c.Notes); err != nil {
			return fmt.Errorf("seed crop %d: %w", c.ID, err)
		}
	}
	for _, t := range seed.Tasks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, farm_id, title, description, due_date, priority, recurring, completed, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.FarmID, t.Title, t.Description, t.DueDate.String(), string(t.Priority),
			t.Recurring, t.Completed, t.CreatedAt.String()); err != nil {
			return fmt.Errorf("seed task %d: %w", t.ID, err)
		}
	}
	for _, e := range seed.Entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO financial_entries (id, farm_id, type, amount, category, description, date, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.FarmID, string(e.Type), e.Amount.String(), e.Category, e.Description,
			e.Date.String(), e.CreatedAt.String()); err != nil {
			return fmt.Errorf("seed entry %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	slog.InfoContext(ctx, "Seeded SQLite database",
		"farms", len(seed.Farms),
		"crops", len(seed.Crops),
		"tasks", len(seed.Tasks),
		"entries", len(seed.Entries))
	return nil
}
