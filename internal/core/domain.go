package core

import "github.com/shopspring/decimal"

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

const (
	Planted   CropStatus = "Planted"
	Growing   CropStatus = "Growing"
	Flowering CropStatus = "Flowering"
	Mature    CropStatus = "Mature"
	Harvested CropStatus = "Harvested"
)

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

const (
	Acres    SizeUnit = "acres"
	Hectares SizeUnit = "hectares"
)

type (
	EntryType    string
	CropStatus   string
	TaskPriority string
	SizeUnit     string

	// FinancialEntry is a single income or expense record. Amount keeps the
	// sign it was stored with; aggregation uses Magnitude.
	FinancialEntry struct {
		ID          int64           `json:"id"`
		FarmID      string          `json:"farmId"`
		Type        EntryType       `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
		CreatedAt   Date            `json:"createdAt"`
	}

	Farm struct {
		ID        int64           `json:"id"`
		Name      string          `json:"name"`
		Location  string          `json:"location"`
		Size      decimal.Decimal `json:"size"`
		SizeUnit  SizeUnit        `json:"sizeUnit"`
		CreatedAt Date            `json:"createdAt"`
	}

	Crop struct {
		ID                  int64      `json:"id"`
		FarmID              string     `json:"farmId"`
		CropType            string     `json:"cropType"`
		FieldLocation       string     `json:"fieldLocation"`
		PlantingDate        Date       `json:"plantingDate"`
		ExpectedHarvestDate Date       `json:"expectedHarvestDate"`
		Status              CropStatus `json:"status"`
		Notes               string     `json:"notes"`
	}

	Task struct {
		ID          int64        `json:"id"`
		FarmID      string       `json:"farmId"`
		Title       string       `json:"title"`
		Description string       `json:"description"`
		DueDate     Date         `json:"dueDate"`
		Priority    TaskPriority `json:"priority"`
		Recurring   bool         `json:"recurring"`
		Completed   bool         `json:"completed"`
		CreatedAt   Date         `json:"createdAt"`
	}

	Temperature struct {
		High float64 `json:"high"`
		Low  float64 `json:"low"`
	}

	// Forecast is one day of weather. Precipitation and Humidity are percentages.
	Forecast struct {
		Date          Date        `json:"date"`
		Condition     string      `json:"condition"`
		Temperature   Temperature `json:"temperature"`
		Precipitation float64     `json:"precipitation"`
		Humidity      float64     `json:"humidity"`
	}
)

var (
	ExpenseCategories = []string{
		"Seeds", "Fertilizer", "Pesticides", "Equipment", "Labor",
		"Fuel", "Maintenance", "Insurance", "Other",
	}
	IncomeCategories = []string{
		"Crop Sales", "Livestock Sales", "Government Subsidies",
		"Consulting", "Equipment Rental", "Other",
	}
	CropStatuses = []CropStatus{Planted, Growing, Flowering, Mature, Harvested}
	CropTypes    = []string{"Corn", "Wheat", "Soybeans", "Tomatoes", "Potatoes", "Rice", "Cotton", "Barley"}
)

// CategoriesFor returns the suggested categories for the entry form of the
// given type. Anything that is not income gets the expense list.
func CategoriesFor(t EntryType) []string {
	src := ExpenseCategories
	if t == Income {
		src = IncomeCategories
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func (t EntryType) Valid() bool {
	return t == Income || t == Expense
}

// Magnitude is the absolute value of the amount.
func (e FinancialEntry) Magnitude() decimal.Decimal {
	return e.Amount.Abs()
}

func (c Crop) Harvested() bool {
	return c.Status == Harvested
}

