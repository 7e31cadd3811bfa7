package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"farmflow/internal/core"
	"farmflow/internal/insights"
	"farmflow/internal/log"
	"farmflow/internal/store"
)

const (
	LoadDashboardMessage = "Failed to load dashboard data"

	// DashboardTaskLimit is how many upcoming tasks the dashboard lists.
	DashboardTaskLimit = 5
)

type DashboardStores interface {
	store.FarmStore
	store.CropStore
	store.TaskStore
	store.SummaryReader
}

type Dashboard struct {
	Stats    insights.DashboardStats `json:"stats"`
	Upcoming []core.Task             `json:"upcomingTasks"`
}

type DashboardService struct {
	stores DashboardStores
	now    func() time.Time
}

func NewDashboardService(stores DashboardStores, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{stores: stores, now: now}
}

// Dashboard loads farms, crops, tasks and the summary concurrently.
func (s *DashboardService) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		farms   []core.Farm
		crops   []core.Crop
		tasks   []core.Task
		summary core.Summary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		farms, err = s.stores.ListFarms(gctx)
		return err
	})
	g.Go(func() (err error) {
		crops, err = s.stores.ListCrops(gctx)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = s.stores.ListTasks(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary, err = s.stores.Summary(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.FromContext(ctx).WithComponent(log.ComponentDashboard).LogError(ctx, "Failed to load dashboard data", err, log.OpLoad, nil)
		return Dashboard{}, &LoadError{Message: LoadDashboardMessage, Err: err}
	}

	upcoming := insights.UpcomingTasks(tasks, s.now(), insights.DefaultUpcomingWindow)
	return Dashboard{
		Stats:    insights.Dashboard(farms, crops, upcoming, summary),
		Upcoming: limit(upcoming, DashboardTaskLimit),
	}, nil
}

// UpcomingTasks lists uncompleted tasks due within the next week, at most
// n of them. A non-positive n means no limit.
func (s *DashboardService) UpcomingTasks(ctx context.Context, n int) ([]core.Task, error) {
	tasks, err := s.stores.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return limit(insights.UpcomingTasks(tasks, s.now(), insights.DefaultUpcomingWindow), n), nil
}

func (s *DashboardService) ToggleTask(ctx context.Context, id int64) (core.Task, error) {
	t, err := s.stores.ToggleComplete(ctx, id)
	if err != nil {
		return core.Task{}, fmt.Errorf("toggle task %d: %w", id, err)
	}
	log.FromContext(ctx).WithComponent(log.ComponentDashboard).InfoContext(ctx, "Task toggled", "id", id, "completed", t.Completed, log.FieldOperation, log.OpUpdate)
	return t, nil
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
