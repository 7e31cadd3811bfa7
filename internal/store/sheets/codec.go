package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"farmflow/internal/core"
	"farmflow/internal/store"
	"farmflow/internal/store/fixtures"
)

// Deleted rows keep their id in column A and carry this marker in column B,
// so the id stays reserved.
const tombstone = "#deleted"

// row is one data row of a tab. num is the 1-based sheet row.
type row struct {
	num   int
	id    int64
	cells []string
}

func (r row) deleted() bool { return r.cells[1] == tombstone }

// table describes how one record kind is laid out on its tab. Row 1 holds
// the header and column A the id.
type table[T any] struct {
	tab    string
	kind   string
	header []string
	decode func(id int64, cells []string) T
	encode func(T) []any
}

func (t table[T]) width() int { return len(t.header) }

func (t table[T]) lastColumn() string { return string(rune('A' + t.width() - 1)) }

func (t table[T]) dataRange() string {
	return fmt.Sprintf("%s!A2:%s", t.tab, t.lastColumn())
}

func (t table[T]) appendRange() string {
	return fmt.Sprintf("%s!A:%s", t.tab, t.lastColumn())
}

func (t table[T]) rowRange(num int) string {
	return fmt.Sprintf("%s!A%d:%s%d", t.tab, num, t.lastColumn(), num)
}

func (t table[T]) tombstoneRow(id int64) []any {
	out := make([]any, t.width())
	out[0] = id
	out[1] = tombstone
	for i := 2; i < len(out); i++ {
		out[i] = ""
	}
	return out
}

// decodeRows turns raw values into rows of exactly width cells. Rows whose
// id cell is not a positive integer are skipped.
func decodeRows(values [][]any, width int) []row {
	out := make([]row, 0, len(values))
	for i, v := range values {
		cells := make([]string, width)
		for j := 0; j < width && j < len(v); j++ {
			cells[j] = cellString(v[j])
		}
		id, err := store.ParseID(cells[0])
		if err != nil {
			continue
		}
		out = append(out, row{num: i + 2, id: id, cells: cells})
	}
	return out
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func cellBool(s string) bool {
	return strings.EqualFold(s, "true") || s == "1"
}

var farmTable = table[core.Farm]{
	tab:    "Farms",
	kind:   "farm",
	header: []string{"id", "name", "location", "size", "sizeUnit", "createdAt"},
	decode: func(id int64, c []string) core.Farm {
		unit := core.SizeUnit(strings.ToLower(c[4]))
		if unit == "" {
			unit = core.Acres
		}
		return core.Farm{
			ID:        id,
			Name:      c[1],
			Location:  c[2],
			Size:      core.ParseAmount(c[3]),
			SizeUnit:  unit,
			CreatedAt: core.ParseDate(c[5]),
		}
	},
	encode: func(f core.Farm) []any {
		return []any{f.ID, f.Name, f.Location, f.Size.String(), string(f.SizeUnit), f.CreatedAt.String()}
	},
}

var cropTable = table[core.Crop]{
	tab:  "Crops",
	kind: "crop",
	header: []string{"id", "farmId", "cropType", "fieldLocation", "plantingDate",
		"expectedHarvestDate", "status", "notes"},
	decode: func(id int64, c []string) core.Crop {
		return core.Crop{
			ID:                  id,
			FarmID:              c[1],
			CropType:            c[2],
			FieldLocation:       c[3],
			PlantingDate:        core.ParseDate(c[4]),
			ExpectedHarvestDate: core.ParseDate(c[5]),
			Status:              core.CropStatus(c[6]),
			Notes:               c[7],
		}
	},
	encode: func(c core.Crop) []any {
		return []any{c.ID, c.FarmID, c.CropType, c.FieldLocation, c.PlantingDate.String(),
			c.ExpectedHarvestDate.String(), string(c.Status), c.Notes}
	},
}

var taskTable = table[core.Task]{
	tab:  "Tasks",
	kind: "task",
	header: []string{"id", "farmId", "title", "description", "dueDate", "priority",
		"recurring", "completed", "createdAt"},
	decode: func(id int64, c []string) core.Task {
		return core.Task{
			ID:          id,
			FarmID:      c[1],
			Title:       c[2],
			Description: c[3],
			DueDate:     core.ParseDate(c[4]),
			Priority:    core.TaskPriority(strings.ToLower(c[5])),
			Recurring:   cellBool(c[6]),
			Completed:   cellBool(c[7]),
			CreatedAt:   core.ParseDate(c[8]),
		}
	},
	encode: func(t core.Task) []any {
		return []any{t.ID, t.FarmID, t.Title, t.Description, t.DueDate.String(), string(t.Priority),
			t.Recurring, t.Completed, t.CreatedAt.String()}
	},
}

var entryTable = table[core.FinancialEntry]{
	tab:  "Finances",
	kind: "financial entry",
	header: []string{"id", "farmId", "type", "amount", "category", "description",
		"date", "createdAt"},
	decode: func(id int64, c []string) core.FinancialEntry {
		return core.FinancialEntry{
			ID:          id,
			FarmID:      c[1],
			Type:        fixtures.NormalizeType(c[2]),
			Amount:      core.ParseAmount(c[3]),
			Category:    c[4],
			Description: c[5],
			Date:        core.ParseDate(c[6]),
			CreatedAt:   core.ParseDate(c[7]),
		}
	},
	encode: func(e core.FinancialEntry) []any {
		return []any{e.ID, e.FarmID, string(e.Type), e.Amount.String(), e.Category, e.Description,
			e.Date.String(), e.CreatedAt.String()}
	},
}
