// Package fixtures loads the seed records bundled with the binary. A
// directory override may replace any of the files; missing files fall back
// to the embedded copy.
package fixtures

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"farmflow/internal/core"
)

//go:embed data/*.json
var embedded embed.FS

const (
	farmsFile    = "farms.json"
	cropsFile    = "crops.json"
	tasksFile    = "tasks.json"
	financesFile = "finances.json"
	weatherFile  = "weather.json"
)

// Seed is a complete set of records for one store.
type Seed struct {
	Farms   []core.Farm
	Crops   []core.Crop
	Tasks   []core.Task
	Entries []core.FinancialEntry
	Weather []core.Forecast
}

// Record shapes as they appear on disk. Farm ids and amounts may be strings
// or numbers; they are normalised once here.
type (
	farmRecord struct {
		ID        int64           `json:"id"`
		Name      string          `json:"name"`
		Location  string          `json:"location"`
		Size      core.FlexString `json:"size"`
		SizeUnit  string          `json:"sizeUnit"`
		CreatedAt core.Date       `json:"createdAt"`
	}

	cropRecord struct {
		ID                  int64           `json:"id"`
		FarmID              core.FlexString `json:"farmId"`
		CropType            string          `json:"cropType"`
		FieldLocation       string          `json:"fieldLocation"`
		PlantingDate        core.Date       `json:"plantingDate"`
		ExpectedHarvestDate core.Date       `json:"expectedHarvestDate"`
		Status              string          `json:"status"`
		Notes               string          `json:"notes"`
	}

	taskRecord struct {
		ID          int64           `json:"id"`
		FarmID      core.FlexString `json:"farmId"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		DueDate     core.Date       `json:"dueDate"`
		Priority    string          `json:"priority"`
		Recurring   bool            `json:"recurring"`
		Completed   bool            `json:"completed"`
		CreatedAt   core.Date       `json:"createdAt"`
	}

	entryRecord struct {
		ID          int64           `json:"id"`
		FarmID      core.FlexString `json:"farmId"`
		Type        string          `json:"type"`
		Amount      core.FlexString `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        core.Date       `json:"date"`
		CreatedAt   core.Date       `json:"createdAt"`
	}
)

// Load reads the embedded seed.
func Load() (Seed, error) {
	return LoadDir("")
}

// LoadDir reads the seed from dir, using the embedded file for anything dir
// does not contain. An empty dir reads only embedded files.
func LoadDir(dir string) (Seed, error) {
	var (
		seed    Seed
		farms   []farmRecord
		crops   []cropRecord
		tasks   []taskRecord
		entries []entryRecord
	)
	if err := read(dir, farmsFile, &farms); err != nil {
		return Seed{}, err
	}
	if err := read(dir, cropsFile, &crops); err != nil {
		return Seed{}, err
	}
	if err := read(dir, tasksFile, &tasks); err != nil {
		return Seed{}, err
	}
	if err := read(dir, financesFile, &entries); err != nil {
		return Seed{}, err
	}
	if err := read(dir, weatherFile, &seed.Weather); err != nil {
		return Seed{}, err
	}

	for _, r := range farms {
		seed.Farms = append(seed.Farms, r.farm())
	}
	for _, r := range crops {
		seed.Crops = append(seed.Crops, r.crop())
	}
	for _, r := range tasks {
		seed.Tasks = append(seed.Tasks, r.task())
	}
	for _, r := range entries {
		seed.Entries = append(seed.Entries, r.entry())
	}
	return seed, nil
}

func read(dir, name string, v any) error {
	var (
		b   []byte
		err error
	)
	if dir != "" {
		b, err = os.ReadFile(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read fixture %s: %w", name, err)
		}
	}
	if dir == "" || err != nil {
		b, err = embedded.ReadFile("data/" + name)
		if err != nil {
			return fmt.Errorf("read embedded fixture %s: %w", name, err)
		}
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}

func (r farmRecord) farm() core.Farm {
	unit := core.SizeUnit(strings.ToLower(strings.TrimSpace(r.SizeUnit)))
	if unit != core.Hectares {
		unit = core.Acres
	}
	return core.Farm{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Size:      core.ParseAmount(r.Size.String()),
		SizeUnit:  unit,
		CreatedAt: r.CreatedAt,
	}
}

func (r cropRecord) crop() core.Crop {
	status := core.CropStatus(strings.TrimSpace(r.Status))
	if status == "" {
		status = core.Planted
	}
	return core.Crop{
		ID:                  r.ID,
		FarmID:              r.FarmID.String(),
		CropType:            r.CropType,
		FieldLocation:       r.FieldLocation,
		PlantingDate:        r.PlantingDate,
		ExpectedHarvestDate: r.ExpectedHarvestDate,
		Status:              status,
		Notes:               r.Notes,
	}
}

func (r taskRecord) task() core.Task {
	priority := core.TaskPriority(strings.ToLower(strings.TrimSpace(r.Priority)))
	if priority == "" {
		priority = core.PriorityMedium
	}
	return core.Task{
		ID:          r.ID,
		FarmID:      r.FarmID.String(),
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    priority,
		Recurring:   r.Recurring,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
	}
}

func (r entryRecord) entry() core.FinancialEntry {
	return core.FinancialEntry{
		ID:          r.ID,
		FarmID:      r.FarmID.String(),
		Type:        NormalizeType(r.Type),
		Amount:      core.ParseAmount(r.Amount.String()),
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
}

// NormalizeType maps stored type text to an EntryType. Anything other than
// income is an expense.
func NormalizeType(raw string) core.EntryType {
	if core.EntryType(strings.ToLower(strings.TrimSpace(raw))) == core.Income {
		return core.Income
	}
	return core.Expense
}
