package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"farmflow/internal/core"
	"farmflow/internal/store"
	"farmflow/internal/store/fixtures"
)

var _ store.Backend = (*Store)(nil)

// Store keeps every record in process memory. Ids come from a per-kind
// high-water mark, so a deleted id is never handed out again.
type Store struct {
	mu      sync.Mutex
	farms   collection[core.Farm]
	crops   collection[core.Crop]
	tasks   collection[core.Task]
	entries collection[core.FinancialEntry]
	weather *Weather

	latency time.Duration
	now     func() time.Time
}

type Option func(*Store)

// WithLatency delays every call, simulating a remote round trip.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(seed fixtures.Seed, opts ...Option) *Store {
	s := &Store{
		farms:   newCollection(seed.Farms, func(f core.Farm) int64 { return f.ID }),
		crops:   newCollection(seed.Crops, func(c core.Crop) int64 { return c.ID }),
		tasks:   newCollection(seed.Tasks, func(t core.Task) int64 { return t.ID }),
		entries: newCollection(seed.Entries, func(e core.FinancialEntry) int64 { return e.ID }),
		weather: NewWeather(seed.Weather),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromDir seeds the store from dir; files missing there fall back to the
// embedded fixtures. An empty dir uses only the embedded fixtures.
func NewFromDir(dir string, opts ...Option) (*Store, error) {
	seed, err := fixtures.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return New(seed, opts...), nil
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Store) stamp() core.Date {
	return core.DateOf(s.now())
}

// Financial entries

func (s *Store) ListEntries(ctx context.Context) ([]core.FinancialEntry, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.list(), nil
}

func (s *Store) ListEntriesByFarm(ctx context.Context, farmID string) ([]core.FinancialEntry, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.filter(func(e core.FinancialEntry) bool { return e.FarmID == farmID }), nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (core.FinancialEntry, error) {
	if err := s.wait(ctx); err != nil {
		return core.FinancialEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries.get(id)
	if !ok {
		return core.FinancialEntry{}, core.NotFound("financial entry", id)
	}
	return e, nil
}

func (s *Store) CreateEntry(ctx context.Context, d core.EntryDraft) (core.FinancialEntry, error) {
	e, err := d.Entry()
	if err != nil {
		return core.FinancialEntry{}, err
	}
	if err := s.wait(ctx); err != nil {
		return core.FinancialEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.entries.next()
	e.CreatedAt = s.stamp()
	s.entries.add(e)
	slog.DebugContext(ctx, "Created financial entry", "id", e.ID, "type", e.Type)
	return e, nil
}

func (s *Store) UpdateEntry(ctx context.Context, id int64, d core.EntryDraft) (core.FinancialEntry, error) {
	if err := s.wait(ctx); err != nil {
		return core.FinancialEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.entries.get(id)
	if !ok {
		return core.FinancialEntry{}, core.NotFound("financial entry", id)
	}
	e, err := d.Entry()
	if err != nil {
		return core.FinancialEntry{}, err
	}
	e.ID = id
	e.CreatedAt = old.CreatedAt
	s.entries.replace(e)
	return e, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id int64) (int64, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.entries.remove(id) {
		return 0, core.NotFound("financial entry", id)
	}
	return id, nil
}

func (s *Store) Summary(ctx context.Context) (core.Summary, error) {
	if err := s.wait(ctx); err != nil {
		return core.Summary{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.entries.items), nil
}

// Farms

func (s *Store) ListFarms(ctx context.Context) ([]core.Farm, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.farms.list(), nil
}

func (s *Store) GetFarm(ctx context.Context, id int64) (core.Farm, error) {
	if err := s.wait(ctx); err != nil {
		return core.Farm{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.farms.get(id)
	if !ok {
		return core.Farm{}, core.NotFound("farm", id)
	}
	return f, nil
}

func (s *Store) CreateFarm(ctx context.Context, d core.FarmDraft) (core.Farm, error) {
	f, err := d.Farm()
	if err != nil {
		return core.Farm{}, err
	}
	if err := s.wait(ctx); err != nil {
		return core.Farm{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = s.farms.next()
	f.CreatedAt = s.stamp()
	s.farms.add(f)
	return f, nil
}

func (s *Store) UpdateFarm(ctx context.Context, id int64, d core.FarmDraft) (core.Farm, error) {
	if err := s.wait(ctx); err != nil {
		return core.Farm{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.farms.get(id)
	if !ok {
		return core.Farm{}, core.NotFound("farm", id)
	}
	f, err := d.Farm()
	if err != nil {
		return core.Farm{}, err
	}
	f.ID = id
	f.CreatedAt = old.CreatedAt
	s.farms.replace(f)
	return f, nil
}

func (s *Store) DeleteFarm(ctx context.Context, id int64) (int64, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.farms.remove(id) {
		return 0, core.NotFound("farm", id)
	}
	return id, nil
}

// Crops

func (s *Store) ListCrops(ctx context.Context) ([]core.Crop, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crops.list(), nil
}

func (s *Store) ListCropsByFarm(ctx context.Context, farmID string) ([]core.Crop, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crops.filter(func(c core.Crop) bool { return c.FarmID == farmID }), nil
}

func (s *Store) GetCrop(ctx context.Context, id int64) (core.Crop, error) {
	if err := s.wait(ctx); err != nil {
		return core.Crop{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crops.get(id)
	if !ok {
		return core.Crop{}, core.NotFound("crop", id)
	}
	return c, nil
}

func (s *Store) CreateCrop(ctx context.Context, d core.CropDraft) (core.Crop, error) {
	c, err := d.Crop()
	if err != nil {
		return core.Crop{}, err
	}
	if err := s.wait(ctx); err != nil {
		return core.Crop{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.crops.next()
	s.crops.add(c)
	return c, nil
}

func (s *Store) UpdateCrop(ctx context.Context, id int64, d core.CropDraft) (core.Crop, error) {
	if err := s.wait(ctx); err != nil {
		return core.Crop{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.crops.get(id); !ok {
		return core.Crop{}, core.NotFound("crop", id)
	}
	c, err := d.Crop()
	if err != nil {
		return core.Crop{}, err
	}
	c.ID = id
	s.crops.replace(c)
	return c, nil
}

func (s *Store) DeleteCrop(ctx context.Context, id int64) (int64, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.crops.remove(id) {
		return 0, core.NotFound("crop", id)
	}
	return id, nil
}

// Tasks

func (s *Store) ListTasks(ctx context.Context) ([]core.Task, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.list(), nil
}

func (s *Store) ListTasksByFarm(ctx context.Context, farmID string) ([]core.Task, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.filter(func(t core.Task) bool { return t.FarmID == farmID }), nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (core.Task, error) {
	if err := s.wait(ctx); err != nil {
		return core.Task{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks.get(id)
	if !ok {
		return core.Task{}, core.NotFound("task", id)
	}
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, d core.TaskDraft) (core.Task, error) {
	t, err := d.Task()
	if err != nil {
		return core.Task{}, err
	}
	if err := s.wait(ctx); err != nil {
		return core.Task{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.tasks.next()
	t.Completed = false
	t.CreatedAt = s.stamp()
	s.tasks.add(t)
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id int64, d core.TaskDraft) (core.Task, error) {
	if err := s.wait(ctx); err != nil {
		return core.Task{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.tasks.get(id)
	if !ok {
		return core.Task{}, core.NotFound("task", id)
	}
	t, err := d.Task()
	if err != nil {
		return core.Task{}, err
	}
	t.ID = id
	t.CreatedAt = old.CreatedAt
	s.tasks.replace(t)
	return t, nil
}

func (s *Store) ToggleComplete(ctx context.Context, id int64) (core.Task, error) {
	if err := s.wait(ctx); err != nil {
		return core.Task{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks.get(id)
	if !ok {
		return core.Task{}, core.NotFound("task", id)
	}
	t.Completed = !t.Completed
	s.tasks.replace(t)
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) (int64, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tasks.remove(id) {
		return 0, core.NotFound("task", id)
	}
	return id, nil
}

// Weather

func (s *Store) Forecast(ctx context.Context) ([]core.Forecast, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.weather.Forecast(ctx)
}

func (s *Store) Current(ctx context.Context) (core.Forecast, error) {
	if err := s.wait(ctx); err != nil {
		return core.Forecast{}, err
	}
	return s.weather.Current(ctx)
}

func (s *Store) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("memory store: %d farms, %d crops, %d tasks, %d entries",
		len(s.farms.items), len(s.crops.items), len(s.tasks.items), len(s.entries.items))
}
