package sheets

import (
	"context"

	"farmflow/internal/core"
	"farmflow/internal/store"
)

var (
	_ store.FinancialStore = (*Client)(nil)
	_ store.FarmStore      = (*Client)(nil)
	_ store.CropStore      = (*Client)(nil)
	_ store.TaskStore      = (*Client)(nil)
)

func (c *Client) ListEntries(ctx context.Context) ([]core.FinancialEntry, error) {
	return list(ctx, c, entryTable, nil)
}

func (c *Client) ListEntriesByFarm(ctx context.Context, farmID string) ([]core.FinancialEntry, error) {
	return list(ctx, c, entryTable, func(e core.FinancialEntry) bool { return e.FarmID == farmID })
}

func (c *Client) GetEntry(ctx context.Context, id int64) (core.FinancialEntry, error) {
	return get(ctx, c, entryTable, id)
}

func (c *Client) CreateEntry(ctx context.Context, d core.EntryDraft) (core.FinancialEntry, error) {
	e, err := d.Entry()
	if err != nil {
		return core.FinancialEntry{}, err
	}
	e.CreatedAt = c.stamp()
	return create(ctx, c, entryTable, func(id int64) core.FinancialEntry {
		e.ID = id
		return e
	})
}

func (c *Client) UpdateEntry(ctx context.Context, id int64, d core.EntryDraft) (core.FinancialEntry, error) {
	return update(ctx, c, entryTable, id, func(old core.FinancialEntry) (core.FinancialEntry, error) {
		e, err := d.Entry()
		if err != nil {
			return core.FinancialEntry{}, err
		}
		e.ID = id
		e.CreatedAt = old.CreatedAt
		return e, nil
	})
}

func (c *Client) DeleteEntry(ctx context.Context, id int64) (int64, error) {
	return remove(ctx, c, entryTable, id)
}

func (c *Client) Summary(ctx context.Context) (core.Summary, error) {
	entries, err := c.ListEntries(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(entries), nil
}

func (c *Client) ListFarms(ctx context.Context) ([]core.Farm, error) {
	return list(ctx, c, farmTable, nil)
}

func (c *Client) GetFarm(ctx context.Context, id int64) (core.Farm, error) {
	return get(ctx, c, farmTable, id)
}

func (c *Client) CreateFarm(ctx context.Context, d core.FarmDraft) (core.Farm, error) {
	f, err := d.Farm()
	if err != nil {
		return core.Farm{}, err
	}
	f.CreatedAt = c.stamp()
	return create(ctx, c, farmTable, func(id int64) core.Farm {
		f.ID = id
		return f
	})
}

func (c *Client) UpdateFarm(ctx context.Context, id int64, d core.FarmDraft) (core.Farm, error) {
	return update(ctx, c, farmTable, id, func(old core.Farm) (core.Farm, error) {
		f, err := d.Farm()
		if err != nil {
			return core.Farm{}, err
		}
		f.ID = id
		f.CreatedAt = old.CreatedAt
		return f, nil
	})
}

func (c *Client) DeleteFarm(ctx context.Context, id int64) (int64, error) {
	return remove(ctx, c, farmTable, id)
}

func (c *Client) ListCrops(ctx context.Context) ([]core.Crop, error) {
	return list(ctx, c, cropTable, nil)
}

func (c *Client) ListCropsByFarm(ctx context.Context, farmID string) ([]core.Crop, error) {
	return list(ctx, c, cropTable, func(cr core.Crop) bool { return cr.FarmID == farmID })
}

func (c *Client) GetCrop(ctx context.Context, id int64) (core.Crop, error) {
	return get(ctx, c, cropTable, id)
}

func (c *Client) CreateCrop(ctx context.Context, d core.CropDraft) (core.Crop, error) {
	cr, err := d.Crop()
	if err != nil {
		return core.Crop{}, err
	}
	return create(ctx, c, cropTable, func(id int64) core.Crop {
		cr.ID = id
		return cr
	})
}

func (c *Client) UpdateCrop(ctx context.Context, id int64, d core.CropDraft) (core.Crop, error) {
	return update(ctx, c, cropTable, id, func(core.Crop) (core.Crop, error) {
		cr, err := d.Crop()
		if err != nil {
			return core.Crop{}, err
		}
		cr.ID = id
		return cr, nil
	})
}

func (c *Client) DeleteCrop(ctx context.Context, id int64) (int64, error) {
	return remove(ctx, c, cropTable, id)
}

func (c *Client) ListTasks(ctx context.Context) ([]core.Task, error) {
	return list(ctx, c, taskTable, nil)
}

func (c *Client) ListTasksByFarm(ctx context.Context, farmID string) ([]core.Task, error) {
	return list(ctx, c, taskTable, func(t core.Task) bool { return t.FarmID == farmID })
}

func (c *Client) GetTask(ctx context.Context, id int64) (core.Task, error) {
	return get(ctx, c, taskTable, id)
}

// CreateTask always stores the new task as not completed.
func (c *Client) CreateTask(ctx context.Context, d core.TaskDraft) (core.Task, error) {
	t, err := d.Task()
	if err != nil {
		return core.Task{}, err
	}
	t.Completed = false
	t.CreatedAt = c.stamp()
	return create(ctx, c, taskTable, func(id int64) core.Task {
		t.ID = id
		return t
	})
}

func (c *Client) UpdateTask(ctx context.Context, id int64, d core.TaskDraft) (core.Task, error) {
	return update(ctx, c, taskTable, id, func(old core.Task) (core.Task, error) {
		t, err := d.Task()
		if err != nil {
			return core.Task{}, err
		}
		t.ID = id
		t.CreatedAt = old.CreatedAt
		return t, nil
	})
}

func (c *Client) ToggleComplete(ctx context.Context, id int64) (core.Task, error) {
	return update(ctx, c, taskTable, id, func(old core.Task) (core.Task, error) {
		old.Completed = !old.Completed
		return old, nil
	})
}

func (c *Client) DeleteTask(ctx context.Context, id int64) (int64, error) {
	return remove(ctx, c, taskTable, id)
}
