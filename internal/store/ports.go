package store

import (
	"context"

	"farmflow/internal/core"
)

// UnknownFarm is shown for entries whose farm id does not resolve.
const UnknownFarm = "Unknown Farm"

// Ports implemented by every record store. Writers validate drafts, assign
// ids that are never reused and return *core.NotFoundError for unknown ids.
// Readers return copies the caller may modify.
type (
	EntryReader interface {
		ListEntries(ctx context.Context) ([]core.FinancialEntry, error)
		GetEntry(ctx context.Context, id int64) (core.FinancialEntry, error)
		ListEntriesByFarm(ctx context.Context, farmID string) ([]core.FinancialEntry, error)
	}

	EntryWriter interface {
		CreateEntry(ctx context.Context, d core.EntryDraft) (core.FinancialEntry, error)
		UpdateEntry(ctx context.Context, id int64, d core.EntryDraft) (core.FinancialEntry, error)
		// DeleteEntry returns the id of the removed entry.
		DeleteEntry(ctx context.Context, id int64) (int64, error)
	}

	// SummaryReader computes totals over the full collection, independently of
	// any filter the caller applies to the entry list.
	SummaryReader interface {
		Summary(ctx context.Context) (core.Summary, error)
	}

	FinancialStore interface {
		EntryReader
		EntryWriter
		SummaryReader
	}

	FarmStore interface {
		ListFarms(ctx context.Context) ([]core.Farm, error)
		GetFarm(ctx context.Context, id int64) (core.Farm, error)
		CreateFarm(ctx context.Context, d core.FarmDraft) (core.Farm, error)
		UpdateFarm(ctx context.Context, id int64, d core.FarmDraft) (core.Farm, error)
		DeleteFarm(ctx context.Context, id int64) (int64, error)
	}

	CropStore interface {
		ListCrops(ctx context.Context) ([]core.Crop, error)
		GetCrop(ctx context.Context, id int64) (core.Crop, error)
		ListCropsByFarm(ctx context.Context, farmID string) ([]core.Crop, error)
		CreateCrop(ctx context.Context, d core.CropDraft) (core.Crop, error)
		UpdateCrop(ctx context.Context, id int64, d core.CropDraft) (core.Crop, error)
		DeleteCrop(ctx context.Context, id int64) (int64, error)
	}

	TaskStore interface {
		ListTasks(ctx context.Context) ([]core.Task, error)
		GetTask(ctx context.Context, id int64) (core.Task, error)
		ListTasksByFarm(ctx context.Context, farmID string) ([]core.Task, error)
		CreateTask(ctx context.Context, d core.TaskDraft) (core.Task, error)
		UpdateTask(ctx context.Context, id int64, d core.TaskDraft) (core.Task, error)
		ToggleComplete(ctx context.Context, id int64) (core.Task, error)
		DeleteTask(ctx context.Context, id int64) (int64, error)
	}

	WeatherReader interface {
		Forecast(ctx context.Context) ([]core.Forecast, error)
		Current(ctx context.Context) (core.Forecast, error)
	}

	// Backend is the full set of collaborators one data source provides.
	Backend interface {
		FinancialStore
		FarmStore
		CropStore
		TaskStore
		WeatherReader
	}
)

// FarmName resolves a farm id to its display name.
func FarmName(farms []core.Farm, farmID string) string {
	for _, f := range farms {
		if FarmKey(f.ID) == farmID {
			return f.Name
		}
	}
	return UnknownFarm
}
