package services

import (
	"context"
	"errors"
	"sync"
)

// ErrStaleSnapshot is returned by a fetch that was overtaken by a newer one.
var ErrStaleSnapshot = errors.New("snapshot superseded by a newer fetch")

// SnapshotLoader sequences loads so only the newest result is accepted.
// Each Fetch cancels the one still in flight.
type SnapshotLoader struct {
	load func(context.Context) (Snapshot, error)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	latest *Snapshot
}

func NewSnapshotLoader(load func(context.Context) (Snapshot, error)) *SnapshotLoader {
	return &SnapshotLoader{load: load}
}

func (l *SnapshotLoader) Fetch(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	l.seq++
	ticket := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.mu.Unlock()

	snap, err := l.load(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if ticket != l.seq {
		return Snapshot{}, ErrStaleSnapshot
	}
	l.cancel = nil
	if err != nil {
		return Snapshot{}, err
	}
	l.latest = &snap
	return snap, nil
}

// Latest returns the last accepted snapshot.
func (l *SnapshotLoader) Latest() (Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.latest == nil {
		return Snapshot{}, false
	}
	return *l.latest, true
}
