package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"farmflow/internal/amqp"
	"farmflow/internal/core"
	"farmflow/internal/finance"
	"farmflow/internal/log"
	"farmflow/internal/store"
)

const LoadFinancesMessage = "Failed to load financial data"

// LoadError is the single user-visible failure of a page load. The cause is
// kept for logs; retrying is up to the caller.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string { return e.Message }

func (e *LoadError) Unwrap() error { return e.Err }

// EventPublisher announces entry writes. *amqp.Client implements it.
type EventPublisher interface {
	PublishEntryChanged(ctx context.Context, msg *amqp.EntryChangedMessage) error
}

var _ EventPublisher = (*amqp.Client)(nil)

// Snapshot is one consistent read of everything the finances page shows.
type Snapshot struct {
	Entries []core.FinancialEntry
	Farms   []core.Farm
	Summary core.Summary
}

// EntryView is an entry with its farm name resolved for display.
type EntryView struct {
	core.FinancialEntry
	FarmName string `json:"farmName"`
}

// FinanceService orchestrates the finances page over the record stores and
// the event publisher.
type FinanceService struct {
	entries   store.FinancialStore
	farms     store.FarmStore
	publisher EventPublisher
}

// NewFinanceService accepts a nil publisher; writes then skip the event.
func NewFinanceService(entries store.FinancialStore, farms store.FarmStore, publisher EventPublisher) *FinanceService {
	return &FinanceService{entries: entries, farms: farms, publisher: publisher}
}

// Load fetches entries, farms and the summary concurrently. Any failure
// cancels the others and is reported as one LoadError.
func (s *FinanceService) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.entries.ListEntries(gctx)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		snap.Entries = entries
		return nil
	})
	g.Go(func() error {
		farms, err := s.farms.ListFarms(gctx)
		if err != nil {
			return fmt.Errorf("list farms: %w", err)
		}
		snap.Farms = farms
		return nil
	})
	g.Go(func() error {
		summary, err := s.entries.Summary(gctx)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		snap.Summary = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		logger(ctx).LogError(ctx, "Failed to load financial data", err, log.OpLoad, nil)
		return Snapshot{}, &LoadError{Message: LoadFinancesMessage, Err: err}
	}
	return snap, nil
}

// Report loads a snapshot and derives the view for the filter and period.
func (s *FinanceService) Report(ctx context.Context, f finance.FilterState, p finance.Period) (finance.Report, []EntryView, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return finance.Report{}, nil, err
	}
	report, views := BuildReport(snap, f, p)
	return report, views, nil
}

// BuildReport is the pure part of Report.
func BuildReport(snap Snapshot, f finance.FilterState, p finance.Period) (finance.Report, []EntryView) {
	report := finance.Build(snap.Entries, snap.Summary, f, p)
	views := make([]EntryView, len(report.Entries))
	for i, e := range report.Entries {
		views[i] = EntryView{FinancialEntry: e, FarmName: store.FarmName(snap.Farms, e.FarmID)}
	}
	return report, views
}

func (s *FinanceService) Summary(ctx context.Context) (core.Summary, error) {
	return s.entries.Summary(ctx)
}

func (s *FinanceService) CreateEntry(ctx context.Context, d core.EntryDraft) (core.FinancialEntry, error) {
	e, err := s.entries.CreateEntry(ctx, d)
	if err != nil {
		return core.FinancialEntry{}, fmt.Errorf("create entry: %w", err)
	}
	logger(ctx).InfoContext(ctx, "Financial entry created", entryFields(e).WithOperation(log.OpCreate).ToSlice()...)
	s.publish(ctx, e.ID, amqp.ActionCreated)
	return e, nil
}

func (s *FinanceService) UpdateEntry(ctx context.Context, id int64, d core.EntryDraft) (core.FinancialEntry, error) {
	e, err := s.entries.UpdateEntry(ctx, id, d)
	if err != nil {
		return core.FinancialEntry{}, fmt.Errorf("update entry %d: %w", id, err)
	}
	logger(ctx).InfoContext(ctx, "Financial entry updated", entryFields(e).WithOperation(log.OpUpdate).ToSlice()...)
	s.publish(ctx, e.ID, amqp.ActionUpdated)
	return e, nil
}

func (s *FinanceService) DeleteEntry(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.entries.DeleteEntry(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete entry %d: %w", id, err)
	}
	logger(ctx).InfoContext(ctx, "Financial entry deleted", log.FieldEntryID, deleted, log.FieldOperation, log.OpDelete)
	s.publish(ctx, deleted, amqp.ActionDeleted)
	return deleted, nil
}

// publish is best effort: the write already succeeded.
func (s *FinanceService) publish(ctx context.Context, id int64, action amqp.Action) {
	if s.publisher == nil {
		logger(ctx).DebugContext(ctx, "No event publisher, skipping entry changed message", log.FieldEntryID, id)
		return
	}
	if err := s.publisher.PublishEntryChanged(ctx, amqp.NewEntryChangedMessage(id, action)); err != nil {
		fields := log.NewFields()
		fields[log.FieldEntryID] = id
		fields["action"] = action
		logger(ctx).LogError(ctx, "Failed to publish entry changed message", err, log.OpPublish, fields)
	}
}

func logger(ctx context.Context) *log.Logger {
	return log.FromContext(ctx).WithComponent(log.ComponentFinance)
}

func entryFields(e core.FinancialEntry) log.LogFields {
	return log.NewFields().WithEntry(e.ID, string(e.Type), e.Amount.String(), e.Category)
}
