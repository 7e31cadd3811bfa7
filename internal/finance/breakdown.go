package finance

import (
	"github.com/shopspring/decimal"

	"farmflow/internal/core"
)

var hundred = decimal.NewFromInt(100)

// CategoryBreakdown is the chart data of the expense donut. Labels are in
// first-seen order of the input.
type CategoryBreakdown struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// Breakdown sums expense magnitudes per category. Income entries are ignored.
func Breakdown(entries []core.FinancialEntry) CategoryBreakdown {
	b := CategoryBreakdown{Labels: []string{}, Values: []decimal.Decimal{}}
	index := make(map[string]int)
	for _, e := range entries {
		if e.Type != core.Expense {
			continue
		}
		i, ok := index[e.Category]
		if !ok {
			i = len(b.Labels)
			index[e.Category] = i
			b.Labels = append(b.Labels, e.Category)
			b.Values = append(b.Values, decimal.Zero)
		}
		b.Values[i] = b.Values[i].Add(e.Magnitude())
	}
	return b
}

func (b CategoryBreakdown) Empty() bool { return len(b.Labels) == 0 }

func (b CategoryBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b.Values {
		total = total.Add(v)
	}
	return total
}

// Percentages returns each category's share of the total rounded to a whole
// percent. It returns nil when the breakdown is empty or sums to zero, so
// callers never divide by zero. The rounded shares need not sum to 100.
func (b CategoryBreakdown) Percentages() []int64 {
	total := b.Total()
	if b.Empty() || total.IsZero() {
		return nil
	}
	out := make([]int64, len(b.Values))
	for i, v := range b.Values {
		out[i] = v.Mul(hundred).Div(total).Round(0).IntPart()
	}
	return out
}
