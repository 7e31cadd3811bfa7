package core

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type (
	// EntryDraft is the unvalidated input of the financial entry form.
	EntryDraft struct {
		FarmID      FlexString `json:"farmId" validate:"required"`
		Type        EntryType  `json:"type" validate:"omitempty,oneof=income expense"`
		Amount      FlexString `json:"amount" validate:"required"`
		Category    string     `json:"category" validate:"required"`
		Description string     `json:"description" validate:"required"`
		Date        string     `json:"date" validate:"required"`
	}

	FarmDraft struct {
		Name     string     `json:"name" validate:"required"`
		Location string     `json:"location" validate:"required"`
		Size     FlexString `json:"size" validate:"required"`
		SizeUnit SizeUnit   `json:"sizeUnit" validate:"omitempty,oneof=acres hectares"`
	}

	CropDraft struct {
		FarmID              FlexString `json:"farmId" validate:"required"`
		CropType            string     `json:"cropType" validate:"required"`
		FieldLocation       string     `json:"fieldLocation" validate:"required"`
		PlantingDate        string     `json:"plantingDate" validate:"required"`
		ExpectedHarvestDate string     `json:"expectedHarvestDate" validate:"required"`
		Status              CropStatus `json:"status" validate:"omitempty,oneof=Planted Growing Flowering Mature Harvested"`
		Notes               string     `json:"notes"`
	}

	TaskDraft struct {
		FarmID      FlexString   `json:"farmId" validate:"required"`
		Title       string       `json:"title" validate:"required"`
		Description string       `json:"description"`
		DueDate     string       `json:"dueDate" validate:"required"`
		Priority    TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
		Recurring   bool         `json:"recurring"`
		Completed   bool         `json:"completed"`
	}
)

// Entry validates the draft and converts it. The returned entry has no ID
// and no CreatedAt; stores assign both.
func (d EntryDraft) Entry() (FinancialEntry, error) {
	d.FarmID = FlexString(d.FarmID.String())
	d.Amount = FlexString(d.Amount.String())
	d.Category = strings.TrimSpace(d.Category)
	d.Description = strings.TrimSpace(d.Description)
	d.Date = strings.TrimSpace(d.Date)
	if err := check(d); err != nil {
		return FinancialEntry{}, err
	}
	amount, err := positiveAmount("amount", d.Amount.String())
	if err != nil {
		return FinancialEntry{}, err
	}
	date, err := requireDate("date", d.Date)
	if err != nil {
		return FinancialEntry{}, err
	}
	typ := d.Type
	if typ == "" {
		typ = Expense
	}
	return FinancialEntry{
		FarmID:      d.FarmID.String(),
		Type:        typ,
		Amount:      amount,
		Category:    d.Category,
		Description: d.Description,
		Date:        date,
	}, nil
}

// Validate reports the first problem with the draft, or nil.
func (d EntryDraft) Validate() error {
	_, err := d.Entry()
	return err
}

func (d FarmDraft) Farm() (Farm, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Location = strings.TrimSpace(d.Location)
	d.Size = FlexString(d.Size.String())
	if err := check(d); err != nil {
		return Farm{}, err
	}
	size, err := positiveAmount("size", d.Size.String())
	if err != nil {
		return Farm{}, err
	}
	unit := d.SizeUnit
	if unit == "" {
		unit = Acres
	}
	return Farm{Name: d.Name, Location: d.Location, Size: size, SizeUnit: unit}, nil
}

func (d CropDraft) Crop() (Crop, error) {
	d.FarmID = FlexString(d.FarmID.String())
	d.CropType = strings.TrimSpace(d.CropType)
	d.FieldLocation = strings.TrimSpace(d.FieldLocation)
	if err := check(d); err != nil {
		return Crop{}, err
	}
	planted, err := requireDate("plantingDate", d.PlantingDate)
	if err != nil {
		return Crop{}, err
	}
	harvest, err := requireDate("expectedHarvestDate", d.ExpectedHarvestDate)
	if err != nil {
		return Crop{}, err
	}
	status := d.Status
	if status == "" {
		status = Planted
	}
	return Crop{
		FarmID:              d.FarmID.String(),
		CropType:            d.CropType,
		FieldLocation:       d.FieldLocation,
		PlantingDate:        planted,
		ExpectedHarvestDate: harvest,
		Status:              status,
		Notes:               strings.TrimSpace(d.Notes),
	}, nil
}

func (d TaskDraft) Task() (Task, error) {
	d.FarmID = FlexString(d.FarmID.String())
	d.Title = strings.TrimSpace(d.Title)
	if err := check(d); err != nil {
		return Task{}, err
	}
	due, err := requireDate("dueDate", d.DueDate)
	if err != nil {
		return Task{}, err
	}
	priority := d.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	return Task{
		FarmID:      d.FarmID.String(),
		Title:       d.Title,
		Description: strings.TrimSpace(d.Description),
		DueDate:     due,
		Priority:    priority,
		Recurring:   d.Recurring,
		Completed:   d.Completed,
	}, nil
}

// check runs the struct tags and converts the first failure into a
// ValidationError named after the JSON field.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Reason: reason(fe)}
	}
	return &ValidationError{Field: "", Reason: err.Error()}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

func positiveAmount(field, raw string) (decimal.Decimal, error) {
	d, err := ParseAmountStrict(raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Reason: "must be a number"}
	}
	if !d.IsPositive() {
		return decimal.Zero, &ValidationError{Field: field, Reason: "must be greater than 0"}
	}
	return d, nil
}

func requireDate(field, raw string) (Date, error) {
	d := ParseDate(raw)
	if !d.Valid() {
		return Date{}, &ValidationError{Field: field, Reason: "must be a valid date"}
	}
	return d, nil
}
