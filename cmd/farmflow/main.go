package main

import (
	"context"
	"errors"
	"net/http"

	"farmflow/internal/cli"
	apphttp "farmflow/internal/http"
	"farmflow/internal/log"
	"farmflow/internal/services"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig(log.ComponentApp)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res := cli.OpenBackend(ctx, cfg, logger)
	defer func() {
		if err := res.Close(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	// Without a broker writes skip the entry change event.
	var publisher services.EventPublisher
	if client := cli.ConnectAMQP(cfg, logger.WithComponent(log.ComponentAMQP)); client != nil {
		defer client.Close()
		publisher = client
	}

	b := res.Backend
	router, err := apphttp.NewRouter(apphttp.Deps{
		Finance:   services.NewFinanceService(b, b, publisher),
		Dashboard: services.NewDashboardService(b, nil),
		Farms:     b,
		Crops:     b,
		Tasks:     b,
		Weather:   b,
		Ready: func(ctx context.Context) error {
			_, err := b.ListFarms(ctx)
			return err
		},
	}, apphttp.Options{
		RateLimit:   cfg.RateLimit,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger.WithComponent(log.ComponentHTTP),
		Production:  cfg.IsProduction,
	})
	if err != nil {
		logger.Error("Failed to build router", log.FieldError, err)
		return
	}
	srv := apphttp.NewServer(":"+cfg.Port, router)
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		logger.Info("Starting farmflow server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
			cancel()
		}
	}()

	cli.WaitForSignal(ctx, logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.LogError(shutdownCtx, "Server shutdown error", err, log.OpShutdown, nil)
	}
	logger.Info("Server stopped gracefully")
}
