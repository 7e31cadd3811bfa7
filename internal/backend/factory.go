package backend

import (
	"context"
	"fmt"

	"farmflow/internal/cache"
	"farmflow/internal/log"
	"farmflow/internal/store/fixtures"
	"farmflow/internal/store/memory"
	"farmflow/internal/store/sheets"
	"farmflow/internal/store/sqlite"
)

type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *DefaultFactory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

var _ Factory = (*DefaultFactory)(nil)

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed, err := fixtures.LoadDir(config.FixturesDir)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemoryBackend(ctx, config, seed), nil
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config, seed)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config, seed)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config, seed fixtures.Seed) *BackendResult {
	s := memory.New(seed, memory.WithLatency(config.SimulatedLatency))
	f.logger.InfoContext(ctx, "Initialized memory backend",
		"fixtures_dir", config.FixturesDir,
		"latency", config.SimulatedLatency,
		"entries", len(seed.Entries))
	return &BackendResult{Backend: s}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config, seed fixtures.Seed) (*BackendResult, error) {
	repo, err := sqlite.Open(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	if config.SQLiteSeed {
		if err := repo.SeedIfEmpty(ctx, seed); err != nil {
			repo.Close()
			return nil, fmt.Errorf("seed SQLite database: %w", err)
		}
	}

	f.logger.WithComponent(log.ComponentStorage).InfoContext(ctx, "Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"seeded", config.SQLiteSeed)

	return &BackendResult{
		Backend: withWeather{records: repo, WeatherReader: memory.NewWeather(seed.Weather)},
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config, seed fixtures.Seed) (*BackendResult, error) {
	cli, err := sheets.New(ctx, config.Sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	ttl := config.Sheets.CacheTTL
	if ttl <= 0 {
		ttl = sheets.DefaultCacheTTL
	}
	caches := cache.NewManager(f.logger.WithComponent(log.ComponentCache).Logger)
	caches.Register(cli.Cache())
	caches.StartCleanup(ttl)

	f.logger.WithComponent(log.ComponentSheets).InfoContext(ctx, "Initialized Google Sheets backend", "cache_ttl", ttl)

	return &BackendResult{
		Backend: withWeather{records: cli, WeatherReader: memory.NewWeather(seed.Weather)},
		Cleanup: func() error {
			caches.Stop()
			return nil
		},
	}, nil
}
