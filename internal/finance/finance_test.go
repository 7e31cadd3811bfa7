package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmflow/internal/core"
)

func entry(id int64, typ core.EntryType, amount string, category, description, date string) core.FinancialEntry {
	return core.FinancialEntry{
		ID:          id,
		FarmID:      "1",
		Type:        typ,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: description,
		Date:        core.ParseDate(date),
	}
}

func ids(entries []core.FinancialEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func labels(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Label
	}
	return out
}

func sample() []core.FinancialEntry {
	return []core.FinancialEntry{
		entry(1, core.Income, "5000", "Crop Sales", "Corn harvest sale", "2024-01-10"),
		entry(2, core.Expense, "800", "Seeds", "Spring seed order", "2024-02-05"),
		entry(3, core.Expense, "450", "Fuel", "Tractor diesel", "2024-02-20"),
		entry(4, core.Income, "1200", "Government Subsidies", "Soil program", "2024-03-01"),
		entry(5, core.Expense, "300", "Fuel", "Harvester fuel", "2024-03-15"),
	}
}

func TestMatchesConjunction(t *testing.T) {
	e := entry(1, core.Expense, "100", "Fuel", "Tractor diesel", "2024-02-20")
	match := FilterState{Search: "DIESEL", Type: TypeExpense, Category: "Fuel"}
	require.True(t, Matches(e, match))

	breakSearch := match
	breakSearch.Search = "seed"
	breakType := match
	breakType.Type = TypeIncome
	breakCategory := match
	breakCategory.Category = "Seeds"

	for name, f := range map[string]FilterState{
		"search":   breakSearch,
		"type":     breakType,
		"category": breakCategory,
	} {
		assert.False(t, Matches(e, f), "changing %s alone must exclude the entry", name)
	}
}

func TestMatchesSearchesCategory(t *testing.T) {
	e := entry(1, core.Expense, "100", "Fertilizer", "Bulk order", "2024-02-20")
	assert.True(t, Matches(e, FilterState{Search: "fert"}))
	assert.False(t, Matches(e, FilterState{Search: "fuel"}))
}

func TestMatchesZeroValueIsAll(t *testing.T) {
	for _, e := range sample() {
		assert.True(t, Matches(e, FilterState{}))
		assert.True(t, Matches(e, FilterState{Type: TypeAll, Category: AllCategories}))
	}
}

func TestFilterNewestFirstStable(t *testing.T) {
	entries := []core.FinancialEntry{
		entry(1, core.Expense, "10", "Fuel", "a", "2024-01-01"),
		entry(2, core.Expense, "10", "Fuel", "b", "2024-03-01"),
		entry(3, core.Expense, "10", "Fuel", "c", "garbage"),
		entry(4, core.Expense, "10", "Fuel", "d", "2024-03-01"),
		entry(5, core.Expense, "10", "Fuel", "e", ""),
		entry(6, core.Expense, "10", "Fuel", "f", "2024-02-01"),
	}
	got := Filter(entries, FilterState{})
	assert.Equal(t, []int64{2, 4, 6, 1, 3, 5}, ids(got))
	assert.Equal(t, "garbage", got[4].Date.Raw)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	entries := sample()
	before := ids(entries)
	_ = Filter(entries, FilterState{Type: TypeExpense})
	assert.Equal(t, before, ids(entries))
}

func TestFilterEmpty(t *testing.T) {
	got := Filter(nil, FilterState{Search: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseTypeFilter(t *testing.T) {
	f, err := ParseTypeFilter("")
	require.NoError(t, err)
	assert.Equal(t, TypeAll, f)
	f, err = ParseTypeFilter("Income")
	require.NoError(t, err)
	assert.Equal(t, TypeIncome, f)
	_, err = ParseTypeFilter("refund")
	assert.Error(t, err)
}

func TestCategoryOptionsTrackData(t *testing.T) {
	opts := CategoryOptions(sample())
	require.NotEmpty(t, opts)
	assert.Equal(t, Option{Value: AllCategories, Label: "All Categories"}, opts[0])

	var values []string
	for _, o := range opts[1:] {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"Crop Sales", "Seeds", "Fuel", "Government Subsidies"}, values)

	assert.Len(t, CategoryOptions(nil), 1)
	assert.Len(t, TypeOptions(), 3)
}

func TestAggregateChronological(t *testing.T) {
	entries := []core.FinancialEntry{
		entry(1, core.Income, "10", "Crop Sales", "x", "2025-06-01"),
		entry(2, core.Income, "10", "Crop Sales", "x", "2021-11-01"),
		entry(3, core.Income, "10", "Crop Sales", "x", "2023-02-01"),
		entry(4, core.Expense, "10", "Fuel", "x", "2023-10-01"),
	}
	assert.Equal(t, []string{"2021", "2023", "2025"}, labels(Aggregate(entries, Yearly)))
	assert.Equal(t, []string{"Q4 2021", "Q1 2023", "Q4 2023", "Q2 2025"}, labels(Aggregate(entries, Quarterly)))
	assert.Equal(t, []string{"Nov 2021", "Feb 2023", "Oct 2023", "Jun 2025"}, labels(Aggregate(entries, Monthly)))
}

func TestAggregateWindow(t *testing.T) {
	var months []core.FinancialEntry
	start := core.NewDate(2023, 1, 15)
	for i := 0; i < 20; i++ {
		months = append(months, core.FinancialEntry{
			ID: int64(i), Type: core.Expense, Amount: decimal.NewFromInt(1),
			Date: core.DateOf(start.AddDate(0, i, 0)),
		})
	}
	got := Aggregate(months, Monthly)
	require.Len(t, got, 12)
	assert.Equal(t, "Sep 2023", got[0].Label)
	assert.Equal(t, "Aug 2024", got[11].Label)

	assert.Len(t, Aggregate(months, Quarterly), 7)

	var years []core.FinancialEntry
	for y := 2015; y < 2025; y++ {
		years = append(years, core.FinancialEntry{Type: core.Income, Amount: decimal.NewFromInt(1), Date: core.NewDate(y, 6, 1)})
	}
	got = Aggregate(years, Yearly)
	assert.Equal(t, []string{"2020", "2021", "2022", "2023", "2024"}, labels(got))
}

func TestAggregateSums(t *testing.T) {
	entries := []core.FinancialEntry{
		entry(1, core.Income, "100", "Crop Sales", "x", "2024-05-01"),
		entry(2, core.Expense, "40", "Fuel", "x", "2024-05-10"),
		entry(3, core.Expense, "10", "Seeds", "x", "2024-05-20"),
	}
	got := Aggregate(entries, Monthly)
	require.Len(t, got, 1)
	assert.Equal(t, "May 2024", got[0].Label)
	assert.Equal(t, "100", got[0].Income.String())
	assert.Equal(t, "50", got[0].Expenses.String())
}

func TestAggregateNegativeAmountsUseMagnitude(t *testing.T) {
	entries := []core.FinancialEntry{
		entry(1, core.Expense, "-40", "Fuel", "x", "2024-05-10"),
		entry(2, core.Expense, "10", "Fuel", "x", "2024-05-11"),
	}
	got := Aggregate(entries, Monthly)
	require.Len(t, got, 1)
	assert.Equal(t, "50", got[0].Expenses.String())
	assert.True(t, got[0].Income.IsZero())
}

func TestAggregateSkipsInvalidDatesAndFillsNoGaps(t *testing.T) {
	entries := []core.FinancialEntry{
		entry(1, core.Income, "100", "Crop Sales", "x", "2024-01-05"),
		entry(2, core.Income, "100", "Crop Sales", "x", "not-a-date"),
		entry(3, core.Income, "100", "Crop Sales", "x", "2024-04-05"),
	}
	got := Aggregate(entries, Monthly)
	assert.Equal(t, []string{"Jan 2024", "Apr 2024"}, labels(got))
	assert.Empty(t, Aggregate(nil, Monthly))
}

func TestAggregateIdempotent(t *testing.T) {
	entries := sample()
	f := FilterState{Type: TypeExpense}
	assert.Equal(t, Filter(entries, f), Filter(entries, f))
	assert.Equal(t, Aggregate(entries, Quarterly), Aggregate(entries, Quarterly))
	assert.Equal(t, Breakdown(entries), Breakdown(entries))
}

func TestTrendAligned(t *testing.T) {
	s := Trend(Aggregate(sample(), Monthly))
	assert.Equal(t, []string{"Jan 2024", "Feb 2024", "Mar 2024"}, s.Labels)
	require.Len(t, s.Income, 3)
	require.Len(t, s.Expenses, 3)
	assert.Equal(t, "5000", s.Income[0].String())
	assert.Equal(t, "1250", s.Expenses[1].String())
	assert.Equal(t, 3, s.Len())
}

func TestPeriodParsing(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, Monthly, p)
	p, err = ParsePeriod("QUARTERLY")
	require.NoError(t, err)
	assert.Equal(t, Quarterly, p)
	_, err = ParsePeriod("weekly")
	assert.Error(t, err)

	assert.Equal(t, 12, Monthly.Window())
	assert.Equal(t, 8, Quarterly.Window())
	assert.Equal(t, 5, Yearly.Window())
	assert.False(t, Period("daily").Valid())
}

func TestLabel(t *testing.T) {
	d := core.NewDate(2024, 12, 31).Time
	assert.Equal(t, "Dec 2024", Label(d, Monthly))
	assert.Equal(t, "Q4 2024", Label(d, Quarterly))
	assert.Equal(t, "2024", Label(d, Yearly))
	assert.Equal(t, "Q1 2024", Label(core.NewDate(2024, 3, 31).Time, Quarterly))
	assert.Equal(t, "Q2 2024", Label(core.NewDate(2024, 4, 1).Time, Quarterly))
}

func TestBreakdownExcludesIncome(t *testing.T) {
	entries := []core.FinancialEntry{
		entry(1, core.Income, "500", "Crop Sales", "x", "2024-01-01"),
		entry(2, core.Expense, "100", "Seeds", "x", "2024-01-02"),
		entry(3, core.Income, "500", "Consulting", "x", "2024-01-03"),
		entry(4, core.Expense, "50", "Fuel", "x", "2024-01-04"),
		entry(5, core.Expense, "50", "Labor", "x", "2024-01-05"),
	}
	b := Breakdown(entries)
	assert.Equal(t, []string{"Seeds", "Fuel", "Labor"}, b.Labels)
	assert.Equal(t, "200", b.Total().String())
	assert.Equal(t, []int64{50, 25, 25}, b.Percentages())
}

func TestBreakdownGroupsExactCategory(t *testing.T) {
	entries := []core.FinancialEntry{
		entry(1, core.Expense, "10", "Fuel", "x", "2024-01-01"),
		entry(2, core.Expense, "5", "fuel", "x", "2024-01-02"),
		entry(3, core.Expense, "20", "Fuel", "x", "2024-01-03"),
	}
	b := Breakdown(entries)
	assert.Equal(t, []string{"Fuel", "fuel"}, b.Labels)
	assert.Equal(t, "30", b.Values[0].String())
	assert.Equal(t, []int64{86, 14}, b.Percentages())
}

func TestBreakdownEmpty(t *testing.T) {
	b := Breakdown([]core.FinancialEntry{entry(1, core.Income, "10", "Crop Sales", "x", "2024-01-01")})
	assert.True(t, b.Empty())
	assert.Empty(t, b.Labels)
	assert.Nil(t, b.Percentages())

	zero := CategoryBreakdown{Labels: []string{"Fuel"}, Values: []decimal.Decimal{decimal.Zero}}
	assert.Nil(t, zero.Percentages())
}

func TestBuildKeepsSummaryIndependent(t *testing.T) {
	entries := sample()
	summary := core.Summarize(entries)
	filters := []FilterState{
		{},
		{Type: TypeIncome},
		{Type: TypeExpense, Category: "Fuel"},
		{Search: "nothing matches this"},
	}
	for _, f := range filters {
		r := Build(entries, summary, f, Monthly)
		assert.Equal(t, summary, r.Summary)
		assert.Len(t, r.Categories, 5)
	}

	r := Build(entries, summary, FilterState{Type: TypeExpense, Category: "Fuel"}, Monthly)
	assert.Equal(t, []int64{5, 3}, ids(r.Entries))
	assert.Equal(t, []string{"Feb 2024", "Mar 2024"}, r.Trend.Labels)
	assert.Equal(t, []string{"Fuel"}, r.Breakdown.Labels)
	assert.Equal(t, []int64{100}, r.Percentages)
	assert.Equal(t, Monthly, r.Period)
}
