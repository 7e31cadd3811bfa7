package sheets

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmflow/internal/core"
)

// fakeValues keeps the data rows of each tab, starting at sheet row 2.
type fakeValues struct {
	mu   sync.Mutex
	tabs map[string][][]any
	gets int
	err  error
}

func newFake() *fakeValues {
	return &fakeValues{tabs: map[string][][]any{}}
}

func splitRange(rng string) (tab, cells string) {
	tab, cells, _ = strings.Cut(rng, "!")
	return tab, cells
}

func (f *fakeValues) Get(_ context.Context, rng string) ([][]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	tab, _ := splitRange(rng)
	return append([][]any(nil), f.tabs[tab]...), nil
}

func (f *fakeValues) Update(_ context.Context, rng string, rows [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	tab, cells := splitRange(rng)
	start, _, _ := strings.Cut(strings.TrimPrefix(cells, "A"), ":")
	num, err := strconv.Atoi(start)
	if err != nil {
		return err
	}
	f.tabs[tab][num-2] = rows[0]
	return nil
}

func (f *fakeValues) Append(_ context.Context, rng string, rows [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	tab, _ := splitRange(rng)
	f.tabs[tab] = append(f.tabs[tab], rows...)
	return nil
}

func seededClient(t *testing.T) (*Client, *fakeValues) {
	t.Helper()
	api := newFake()
	api.tabs["Farms"] = [][]any{
		{"1", "Green Valley", "Iowa", "250", "acres", "2024-01-01T00:00:00Z"},
		{float64(2), "Sunset Ranch", "Texas", "1,200", "", ""},
	}
	api.tabs["Finances"] = [][]any{
		{"1", "1", "Income", "$1,500.00", "Crop Sales", "Corn", "2025-05-02"},
		{"header?", "x"},
		{"2", float64(2), "expense", "300", "Seeds", "Seed order", "not a date", ""},
		{"3", "1", "expense", "abc", "Fuel", "Diesel", "2025-05-10", ""},
	}
	api.tabs["Tasks"] = [][]any{
		{"4", "1", "Irrigate", "", "2025-07-02", "HIGH", "FALSE", "false", ""},
	}
	c := NewWithAPI(api, time.Minute)
	c.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }
	return c, api
}

func TestDecodeNormalisesCells(t *testing.T) {
	c, _ := seededClient(t)
	ctx := context.Background()

	entries, err := c.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3, "rows without a numeric id are skipped")

	assert.Equal(t, core.Income, entries[0].Type)
	assert.Equal(t, "1500", entries[0].Amount.String())
	assert.Equal(t, "2025-05-02", entries[0].Date.ISODay())
	assert.False(t, entries[0].CreatedAt.Valid(), "short rows are padded")

	assert.Equal(t, "2", entries[1].FarmID, "numeric farm ids become strings")
	assert.False(t, entries[1].Date.Valid())
	assert.Equal(t, "not a date", entries[1].Date.Raw)
	assert.True(t, entries[2].Amount.IsZero(), "malformed amounts read as zero")

	farms, err := c.ListFarms(ctx)
	require.NoError(t, err)
	require.Len(t, farms, 2)
	assert.Equal(t, int64(2), farms[1].ID)
	assert.Equal(t, "1200", farms[1].Size.String())
	assert.Equal(t, core.Acres, farms[1].SizeUnit)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.PriorityHigh, tasks[0].Priority)
	assert.False(t, tasks[0].Completed)
}

func TestReadsAreCachedUntilWrite(t *testing.T) {
	c, api := seededClient(t)
	ctx := context.Background()

	_, err := c.ListEntries(ctx)
	require.NoError(t, err)
	_, err = c.GetEntry(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, api.gets)

	_, err = c.CreateEntry(ctx, core.EntryDraft{
		FarmID: "1", Type: core.Expense, Amount: "20", Category: "Fuel", Description: "Top up", Date: "2025-06-01",
	})
	require.NoError(t, err)
	gets := api.gets

	entries, err := c.ListEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.Equal(t, gets+1, api.gets)
}

func TestEntryLifecycleKeepsIdsReserved(t *testing.T) {
	c, api := seededClient(t)
	ctx := context.Background()
	draft := core.EntryDraft{
		FarmID: "2", Type: core.Income, Amount: "99.5", Category: "Consulting", Description: "Advice", Date: "2025-06-20",
	}

	created, err := c.CreateEntry(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.True(t, created.CreatedAt.Equal(c.now()))

	draft.Description = "Soil advice"
	updated, err := c.UpdateEntry(ctx, created.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, "Soil advice", updated.Description)
	assert.Equal(t, created.CreatedAt.String(), updated.CreatedAt.String())

	id, err := c.DeleteEntry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
	assert.Len(t, api.tabs["Finances"], 5, "deletes leave a tombstone row")

	_, err = c.GetEntry(ctx, created.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = c.DeleteEntry(ctx, created.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	next, err := c.CreateEntry(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(5), next.ID)
}

func TestWritesValidateBeforeCallingTheAPI(t *testing.T) {
	c, api := seededClient(t)
	_, err := c.CreateEntry(context.Background(), core.EntryDraft{FarmID: "1", Amount: "-3", Category: "Fuel", Description: "x", Date: "2025-01-01"})
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Zero(t, api.gets)
}

func TestSummaryAndByFarm(t *testing.T) {
	c, _ := seededClient(t)
	ctx := context.Background()

	sum, err := c.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1500", sum.TotalIncome.String())
	assert.Equal(t, "300", sum.TotalExpenses.String())
	assert.Equal(t, "1200", sum.NetBalance.String())

	byFarm, err := c.ListEntriesByFarm(ctx, "2")
	require.NoError(t, err)
	require.Len(t, byFarm, 1)
	assert.Equal(t, int64(2), byFarm[0].ID)
}

func TestTasksAndCrops(t *testing.T) {
	c, _ := seededClient(t)
	ctx := context.Background()

	task, err := c.ToggleComplete(ctx, 4)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	task, err = c.GetTask(ctx, 4)
	require.NoError(t, err)
	assert.True(t, task.Completed)

	created, err := c.CreateTask(ctx, core.TaskDraft{FarmID: "1", Title: "Fence", DueDate: "2025-07-05", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.False(t, created.Completed)

	crop, err := c.CreateCrop(ctx, core.CropDraft{
		FarmID: "1", CropType: "Corn", FieldLocation: "North", PlantingDate: "2025-04-01", ExpectedHarvestDate: "2025-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), crop.ID, "an empty tab starts at 1")
	assert.Equal(t, core.Planted, crop.Status)

	crops, err := c.ListCropsByFarm(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, crops, 1)

	_, err = c.UpdateCrop(ctx, 42, core.CropDraft{
		FarmID: "1", CropType: "Corn", FieldLocation: "North", PlantingDate: "2025-04-01", ExpectedHarvestDate: "2025-09-01",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateEntryChecksExistenceFirst(t *testing.T) {
	c, api := seededClient(t)
	ctx := context.Background()
	bad := core.EntryDraft{FarmID: "1", Type: core.Income, Amount: "0", Category: "Crop Sales", Description: "Wheat", Date: "2025-06-20"}

	_, err := c.UpdateEntry(ctx, 42, bad)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrValidation)

	before := append([][]any(nil), api.tabs["Finances"]...)
	_, err = c.UpdateEntry(ctx, 1, bad)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, before, api.tabs["Finances"], "rejected drafts write nothing")
}

func TestAPIErrorsAreWrapped(t *testing.T) {
	c, api := seededClient(t)
	boom := errors.New("quota exceeded")
	api.err = boom

	_, err := c.ListFarms(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "read Farms")
}

func TestRanges(t *testing.T) {
	assert.Equal(t, "Finances!A2:H", entryTable.dataRange())
	assert.Equal(t, "Tasks!A:I", taskTable.appendRange())
	assert.Equal(t, "Farms!A7:F7", farmTable.rowRange(7))
	assert.Equal(t, []any{int64(3), tombstone, "", "", "", ""}, farmTable.tombstoneRow(3))
}
