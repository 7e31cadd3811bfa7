package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmflow/internal/amqp"
	"farmflow/internal/log"
	"farmflow/internal/services"
	"farmflow/internal/store/fixtures"
	"farmflow/internal/store/memory"
)

func newRecomputer(t *testing.T, load func(context.Context) (services.Snapshot, error)) (*recomputer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := log.DefaultConfig()
	cfg.Output = &buf
	cfg.Format = "json"
	return &recomputer{loader: services.NewSnapshotLoader(load), logger: log.New(cfg)}, &buf
}

func TestHandleRecomputesReport(t *testing.T) {
	seed, err := fixtures.Load()
	require.NoError(t, err)
	mem := memory.New(seed)
	r, buf := newRecomputer(t, services.NewFinanceService(mem, mem, nil).Load)

	require.NoError(t, r.handle(context.Background(), amqp.NewEntryChangedMessage(3, amqp.ActionUpdated)))
	assert.Contains(t, buf.String(), `"msg":"Financial report recomputed"`)
	assert.Contains(t, buf.String(), `"reason":"updated"`)

	latest, ok := r.loader.Latest()
	require.True(t, ok)
	assert.Len(t, latest.Entries, len(seed.Entries))
}

func TestHandleReturnsLoadError(t *testing.T) {
	r, _ := newRecomputer(t, func(context.Context) (services.Snapshot, error) {
		return services.Snapshot{}, errors.New("offline")
	})
	assert.Error(t, r.handle(context.Background(), amqp.NewEntryChangedMessage(1, amqp.ActionCreated)))
}
