package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmflow/internal/core"
)

func TestLoadEmbedded(t *testing.T) {
	seed, err := Load()
	require.NoError(t, err)
	assert.Len(t, seed.Farms, 3)
	assert.Len(t, seed.Crops, 5)
	assert.Len(t, seed.Tasks, 5)
	assert.Len(t, seed.Entries, 16)
	assert.Len(t, seed.Weather, 7)

	assert.Equal(t, "180.5", seed.Farms[1].Size.String())
	assert.Equal(t, core.Hectares, seed.Farms[2].SizeUnit)
	assert.Equal(t, "1", seed.Crops[1].FarmID)
	assert.Equal(t, core.PriorityMedium, seed.Tasks[4].Priority)
	assert.Equal(t, "620.4", seed.Entries[2].Amount.String())
	assert.True(t, seed.Entries[0].Date.Valid())
}

func TestLoadDirOverridesAndNormalises(t *testing.T) {
	dir := t.TempDir()
	data := `[
		{"id": 1, "farmId": 7, "type": "INCOME", "amount": "$1,200.00", "category": "Crop Sales", "description": "a", "date": "2024-01-01"},
		{"id": 2, "farmId": "7", "type": "expense", "amount": "n/a", "category": "Fuel", "description": "b", "date": "01/02/2024"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, financesFile), []byte(data), 0o644))

	seed, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, seed.Entries, 2)
	assert.Equal(t, core.Income, seed.Entries[0].Type)
	assert.Equal(t, "1200", seed.Entries[0].Amount.String())
	assert.Equal(t, "7", seed.Entries[0].FarmID)
	assert.True(t, seed.Entries[1].Amount.IsZero())
	assert.False(t, seed.Entries[1].Date.Valid())
	assert.Equal(t, "01/02/2024", seed.Entries[1].Date.Raw)

	assert.Len(t, seed.Farms, 3, "missing files fall back to embedded")
}

func TestLoadDirRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, farmsFile), []byte(`{`), 0o644))
	_, err := LoadDir(dir)
	assert.Error(t, err)
}

func TestNormalizeType(t *testing.T) {
	assert.Equal(t, core.Income, NormalizeType(" Income "))
	assert.Equal(t, core.Expense, NormalizeType("expense"))
	assert.Equal(t, core.Expense, NormalizeType("refund"))
}
