package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmflow/internal/config"
	"farmflow/internal/store/sheets"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "csv"})
	assert.ErrorContains(t, err, "invalid backend type")

	cfg, err := FromAppConfig(&config.Config{
		DataBackend:              "sheets",
		GoogleSpreadsheetID:      "sheet-1",
		GoogleServiceAccountJSON: `{"type":"service_account"}`,
		SheetsCacheTTL:           time.Minute,
		SimulatedLatency:         time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, SheetsBackend, cfg.Type)
	assert.Equal(t, "sheet-1", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, time.Minute, cfg.Sheets.CacheTTL)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"negative latency", Config{Type: MemoryBackend, SimulatedLatency: -1}, true},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"sheets without credentials", Config{Type: SheetsBackend}, true},
		{"unknown", Config{Type: "csv"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	assert.Equal(t, []string{"memory", "sqlite", "sheets"}, BackendTypeStrings())
}

func TestCreateMemoryBackend(t *testing.T) {
	ctx := context.Background()
	res, err := NewFactory(nil).CreateBackend(ctx, Config{Type: MemoryBackend})
	require.NoError(t, err)
	defer res.Close()

	entries, err := res.Backend.ListEntries(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	days, err := res.Backend.Forecast(ctx)
	require.NoError(t, err)
	assert.Len(t, days, 7)
}

func TestCreateSQLiteBackendSeedsAndComposesWeather(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "ff.db"), SQLiteSeed: true}

	res, err := NewFactory(nil).CreateBackend(ctx, cfg)
	require.NoError(t, err)

	farms, err := res.Backend.ListFarms(ctx)
	require.NoError(t, err)
	assert.Len(t, farms, 3)

	today, err := res.Backend.Current(ctx)
	require.NoError(t, err)
	assert.True(t, today.Date.Valid())
	require.NoError(t, res.Close())

	// Reopening the same file does not seed twice.
	res, err = NewFactory(nil).CreateBackend(ctx, cfg)
	require.NoError(t, err)
	defer res.Close()
	farms, err = res.Backend.ListFarms(ctx)
	require.NoError(t, err)
	assert.Len(t, farms, 3)
}

func TestCreateSheetsBackendNeedsCredentials(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{
		Type:   SheetsBackend,
		Sheets: sheets.Config{SpreadsheetID: "sheet-1", CredentialsFile: "/nonexistent/sa.json"},
	})
	assert.ErrorContains(t, err, "read service account file")
}
