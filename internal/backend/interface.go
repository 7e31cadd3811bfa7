package backend

import (
	"context"
	"time"

	"farmflow/internal/store"
	"farmflow/internal/store/sheets"
)

// CleanupFunc releases whatever the backend holds open.
type CleanupFunc func() error

type BackendResult struct {
	Backend store.Backend
	Cleanup CleanupFunc
}

// Close runs Cleanup when there is one.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

type Config struct {
	Type BackendType

	// Fixture directory override; empty uses the embedded fixtures. The
	// forecast always comes from fixtures, whatever the backend.
	FixturesDir string

	// Memory specific
	SimulatedLatency time.Duration

	// SQLite specific
	SQLiteDBPath string
	SQLiteSeed   bool

	// Google Sheets specific
	Sheets sheets.Config
}

type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}

// records is what a persistent backend provides; the forecast is added on top.
type records interface {
	store.FinancialStore
	store.FarmStore
	store.CropStore
	store.TaskStore
}

type withWeather struct {
	records
	store.WeatherReader
}

var _ store.Backend = withWeather{}
