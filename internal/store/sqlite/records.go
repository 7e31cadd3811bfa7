package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"farmflow/internal/core"
)

// Farms

const farmColumns = `id, name, location, size, size_unit, created_at`

func scanFarm(row scanner) (core.Farm, error) {
	var f core.Farm
	var size, unit, stamp string
	if err := row.Scan(&f.ID, &f.Name, &f.Location, &size, &unit, &stamp); err != nil {
		return core.Farm{}, err
	}
	f.Size = core.ParseAmount(size)
	f.SizeUnit = core.SizeUnit(unit)
	f.CreatedAt = core.ParseDate(stamp)
	return f, nil
}

func (r *Repository) ListFarms(ctx context.Context) ([]core.Farm, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+farmColumns+` FROM farms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query farms: %w", err)
	}
	defer rows.Close()
	out := []core.Farm{}
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan farm: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repository) GetFarm(ctx context.Context, id int64) (core.Farm, error) {
	f, err := scanFarm(r.db.QueryRowContext(ctx, `SELECT `+farmColumns+` FROM farms WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Farm{}, core.NotFound("farm", id)
	}
	if err != nil {
		return core.Farm{}, fmt.Errorf("get farm %d: %w", id, err)
	}
	return f, nil
}

func (r *Repository) CreateFarm(ctx context.Context, d core.FarmDraft) (core.Farm, error) {
	f, err := d.Farm()
	if err != nil {
		return core.Farm{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO farms (name, location, size, size_unit, created_at) VALUES (?, ?, ?, ?, ?)`,
		f.Name, f.Location, f.Size.String(), string(f.SizeUnit), r.stamp())
	if err != nil {
		return core.Farm{}, fmt.Errorf("create farm: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Farm{}, fmt.Errorf("create farm: %w", err)
	}
	return r.GetFarm(ctx, id)
}

func (r *Repository) UpdateFarm(ctx context.Context, id int64, d core.FarmDraft) (core.Farm, error) {
	if _, err := r.GetFarm(ctx, id); err != nil {
		return core.Farm{}, err
	}
	f, err := d.Farm()
	if err != nil {
		return core.Farm{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE farms SET name = ?, location = ?, size = ?, size_unit = ? WHERE id = ?`,
		f.Name, f.Location, f.Size.String(), string(f.SizeUnit), id)
	if err := affected(res, err, "farm", id); err != nil {
		return core.Farm{}, err
	}
	return r.GetFarm(ctx, id)
}

func (r *Repository) DeleteFarm(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM farms WHERE id = ?`, id)
	if err := affected(res, err, "farm", id); err != nil {
		return 0, err
	}
	return id, nil
}

// Crops

const cropColumns = `id, farm_id, crop_type, field_location, planting_date, expected_harvest_date, status, notes`

func scanCrop(row scanner) (core.Crop, error) {
	var c core.Crop
	var planted, harvest, status string
	if err := row.Scan(&c.ID, &c.FarmID, &c.CropType, &c.FieldLocation, &planted, &harvest, &status, &c.Notes); err != nil {
		return core.Crop{}, err
	}
	c.PlantingDate = core.ParseDate(planted)
	c.ExpectedHarvestDate = core.ParseDate(harvest)
	c.Status = core.CropStatus(status)
	return c, nil
}

func (r *Repository) queryCrops(ctx context.Context, query string, args ...any) ([]core.Crop, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query crops: %w", err)
	}
	defer rows.Close()
	out := []core.Crop{}
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan crop: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) ListCrops(ctx context.Context) ([]core.Crop, error) {
	return r.queryCrops(ctx, `SELECT `+cropColumns+` FROM crops ORDER BY id`)
}

func (r *Repository) ListCropsByFarm(ctx context.Context, farmID string) ([]core.Crop, error) {
	return r.queryCrops(ctx, `SELECT `+cropColumns+` FROM crops WHERE farm_id = ? ORDER BY id`, farmID)
}

func (r *Repository) GetCrop(ctx context.Context, id int64) (core.Crop, error) {
	c, err := scanCrop(r.db.QueryRowContext(ctx, `SELECT `+cropColumns+` FROM crops WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Crop{}, core.NotFound("crop", id)
	}
	if err != nil {
		return core.Crop{}, fmt.Errorf("get crop %d: %w", id, err)
	}
	return c, nil
}

func (r *Repository) CreateCrop(ctx context.Context, d core.CropDraft) (core.Crop, error) {
	c, err := d.Crop()
	if err != nil {
		return core.Crop{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO crops (farm_id, crop_type, field_location, planting_date, expected_harvest_date, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.FarmID, c.CropType, c.FieldLocation, c.PlantingDate.String(), c.ExpectedHarvestDate.String(), string(c.Status), c.Notes)
	if err != nil {
		return core.Crop{}, fmt.Errorf("create crop: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Crop{}, fmt.Errorf("create crop: %w", err)
	}
	return r.GetCrop(ctx, id)
}

func (r *Repository) UpdateCrop(ctx context.Context, id int64, d core.CropDraft) (core.Crop, error) {
	if _, err := r.GetCrop(ctx, id); err != nil {
		return core.Crop{}, err
	}
	c, err := d.Crop()
	if err != nil {
		return core.Crop{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE crops SET farm_id = ?, crop_type = ?, field_location = ?, planting_date = ?,
		 expected_harvest_date = ?, status = ?, notes = ? WHERE id = ?`,
		c.FarmID, c.CropType, c.FieldLocation, c.PlantingDate.String(), c.ExpectedHarvestDate.String(), string(c.Status), c.Notes, id)
	if err := affected(res, err, "crop", id); err != nil {
		return core.Crop{}, err
	}
	return r.GetCrop(ctx, id)
}

func (r *Repository) DeleteCrop(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crops WHERE id = ?`, id)
	if err := affected(res, err, "crop", id); err != nil {
		return 0, err
	}
	return id, nil
}

// Tasks

const taskColumns = `id, farm_id, title, description, due_date, priority, recurring, completed, created_at`

func scanTask(row scanner) (core.Task, error) {
	var t core.Task
	var due, priority, stamp string
	if err := row.Scan(&t.ID, &t.FarmID, &t.Title, &t.Description, &due, &priority, &t.Recurring, &t.Completed, &stamp); err != nil {
		return core.Task{}, err
	}
	t.DueDate = core.ParseDate(due)
	t.Priority = core.TaskPriority(priority)
	t.CreatedAt = core.ParseDate(stamp)
	return t, nil
}

func (r *Repository) queryTasks(ctx context.Context, query string, args ...any) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()
	out := []core.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) ListTasks(ctx context.Context) ([]core.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

func (r *Repository) ListTasksByFarm(ctx context.Context, farmID string) ([]core.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE farm_id = ? ORDER BY id`, farmID)
}

func (r *Repository) GetTask(ctx context.Context, id int64) (core.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Task{}, core.NotFound("task", id)
	}
	if err != nil {
		return core.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (r *Repository) CreateTask(ctx context.Context, d core.TaskDraft) (core.Task, error) {
	t, err := d.Task()
	if err != nil {
		return core.Task{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (farm_id, title, description, due_date, priority, recurring, completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		t.FarmID, t.Title, t.Description, t.DueDate.String(), string(t.Priority), t.Recurring, r.stamp())
	if err != nil {
		return core.Task{}, fmt.Errorf("create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Task{}, fmt.Errorf("create task: %w", err)
	}
	return r.GetTask(ctx, id)
}

func (r *Repository) UpdateTask(ctx context.Context, id int64, d core.TaskDraft) (core.Task, error) {
	if _, err := r.GetTask(ctx, id); err != nil {
		return core.Task{}, err
	}
	t, err := d.Task()
	if err != nil {
		return core.Task{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET farm_id = ?, title = ?, description = ?, due_date = ?, priority = ?,
		 recurring = ?, completed = ? WHERE id = ?`,
		t.FarmID, t.Title, t.Description, t.DueDate.String(), string(t.Priority), t.Recurring, t.Completed, id)
	if err := affected(res, err, "task", id); err != nil {
		return core.Task{}, err
	}
	return r.GetTask(ctx, id)
}

func (r *Repository) ToggleComplete(ctx context.Context, id int64) (core.Task, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET completed = 1 - completed WHERE id = ?`, id)
	if err := affected(res, err, "task", id); err != nil {
		return core.Task{}, err
	}
	return r.GetTask(ctx, id)
}

func (r *Repository) DeleteTask(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err := affected(res, err, "task", id); err != nil {
		return 0, err
	}
	return id, nil
}
