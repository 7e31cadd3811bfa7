package main

import (
	"context"
	"errors"
	"os"
	"time"

	"farmflow/internal/amqp"
	"farmflow/internal/cli"
	"farmflow/internal/finance"
	"farmflow/internal/log"
	"farmflow/internal/services"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig(log.ComponentWorker)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	logger.Info("Starting farmflow-worker", log.FieldBackend, cfg.DataBackend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res := cli.OpenBackend(ctx, cfg, logger)
	defer res.Close()

	client := cli.ConnectAMQP(cfg, logger.WithComponent(log.ComponentAMQP))
	if client == nil {
		logger.Error("Failed to initialize AMQP client")
		os.Exit(1)
	}
	defer client.Close()

	finances := services.NewFinanceService(res.Backend, res.Backend, nil)
	r := &recomputer{loader: services.NewSnapshotLoader(finances.Load), logger: logger}

	// Startup pass so the first report does not wait for a write.
	if err := r.recompute(ctx, "startup"); err != nil {
		logger.LogError(ctx, "Startup recompute failed", err, log.OpStartup, nil)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := client.ConsumeEntryChanged(ctx, r.handle); err != nil && !errors.Is(err, context.Canceled) {
			logger.LogError(ctx, "Message consumption failed", err, log.OpConsume, nil)
		}
		cancel()
	}()

	cli.WaitForSignal(ctx, logger)
	logger.Info("Shutting down worker...")
	cancel()

	select {
	case <-done:
		logger.Info("Worker shutdown complete")
	case <-time.After(cli.ShutdownTimeout):
		logger.Warn("Shutdown timeout reached")
	}
}

// recomputer rebuilds the unfiltered monthly report whenever entries change.
type recomputer struct {
	loader *services.SnapshotLoader
	logger *log.Logger
}

// handle errors drop the message; the next change recomputes from scratch.
func (r *recomputer) handle(ctx context.Context, msg *amqp.EntryChangedMessage) error {
	r.logger.InfoContext(ctx, "Entry changed", log.FieldEntryID, msg.ID, "action", msg.Action)
	return r.recompute(ctx, string(msg.Action))
}

func (r *recomputer) recompute(ctx context.Context, reason string) error {
	snap, err := r.loader.Fetch(ctx)
	if errors.Is(err, services.ErrStaleSnapshot) {
		return nil
	}
	if err != nil {
		return err
	}
	report, _ := services.BuildReport(snap, finance.FilterState{}, finance.Monthly)
	r.logger.InfoContext(ctx, "Financial report recomputed",
		"reason", reason,
		log.FieldPeriod, report.Period,
		"entries", len(report.Entries),
		"trend_labels", report.Trend.Labels,
		"breakdown_categories", report.Breakdown.Labels,
		"breakdown_percentages", report.Percentages,
		"net_balance", report.Summary.NetBalance.String())
	return nil
}
