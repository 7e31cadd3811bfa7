// Package finance turns a collection of financial entries into the views
// the finances page renders: the filtered list, the category options, the
// per-period trend and the expense breakdown.
//
// Everything here is pure. Functions never mutate their input and return the
// same output for the same input.
package finance

import (
	"fmt"
	"slices"
	"strings"

	"farmflow/internal/core"
)

const (
	TypeAll     TypeFilter = "all"
	TypeIncome  TypeFilter = "income"
	TypeExpense TypeFilter = "expense"
)

// AllCategories is the category filter value that matches every entry.
const AllCategories = "all"

type (
	TypeFilter string

	// FilterState is the user's current filter selection. An empty Type or
	// Category means "all".
	FilterState struct {
		Search   string     `json:"search"`
		Type     TypeFilter `json:"type"`
		Category string     `json:"category"`
	}

	// Option is one entry of a select control.
	Option struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
)

func ParseTypeFilter(s string) (TypeFilter, error) {
	switch t := TypeFilter(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TypeAll:
		return TypeAll, nil
	case TypeIncome, TypeExpense:
		return t, nil
	default:
		return "", fmt.Errorf("unknown type filter %q", s)
	}
}

// Matches reports whether e passes every active predicate of f. Search is a
// case-insensitive substring match on description or category.
func Matches(e core.FinancialEntry, f FilterState) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Description), term) &&
			!strings.Contains(strings.ToLower(e.Category), term) {
			return false
		}
	}
	if f.Type != "" && f.Type != TypeAll && string(e.Type) != string(f.Type) {
		return false
	}
	if f.Category != "" && f.Category != AllCategories && e.Category != f.Category {
		return false
	}
	return true
}

// Filter returns the entries matching f, newest first. Ties keep their
// input order and entries with an invalid date sort last.
func Filter(entries []core.FinancialEntry, f FilterState) []core.FinancialEntry {
	out := make([]core.FinancialEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, f) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, newestFirst)
	return out
}

func newestFirst(a, b core.FinancialEntry) int {
	av, bv := a.Date.Valid(), b.Date.Valid()
	switch {
	case av && !bv:
		return -1
	case !av && bv:
		return 1
	case !av && !bv:
		return 0
	}
	return b.Date.Time.Compare(a.Date.Time)
}

// CategoryOptions lists the "All Categories" option followed by every
// distinct category observed in entries, in first-seen order.
func CategoryOptions(entries []core.FinancialEntry) []Option {
	seen := make(map[string]struct{})
	out := []Option{{Value: AllCategories, Label: "All Categories"}}
	for _, e := range entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, Option{Value: e.Category, Label: e.Category})
	}
	return out
}

func TypeOptions() []Option {
	return []Option{
		{Value: string(TypeAll), Label: "All Types"},
		{Value: string(TypeIncome), Label: "Income"},
		{Value: string(TypeExpense), Label: "Expenses"},
	}
}
