package core

import "github.com/shopspring/decimal"

// Summary holds collection-wide totals. Stores compute it over every entry
// they hold, never over a filtered view.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetBalance    decimal.Decimal `json:"netBalance"`
}

// Summarize totals entries by type, adding magnitudes. Anything that is not
// income counts as an expense.
func Summarize(entries []FinancialEntry) Summary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.Type == Income {
			income = income.Add(e.Magnitude())
			continue
		}
		expenses = expenses.Add(e.Magnitude())
	}
	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetBalance:    income.Sub(expenses),
	}
}
