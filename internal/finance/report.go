package finance

import "farmflow/internal/core"

// Report is everything the finances page needs for one filter and period.
// Summary is the collection-wide total handed in by the caller and does not
// follow the filter. Categories are derived from the full collection.
type Report struct {
	Filter      FilterState           `json:"filter"`
	Period      Period                `json:"period"`
	Entries     []core.FinancialEntry `json:"entries"`
	Buckets     []Bucket              `json:"buckets"`
	Trend       TrendSeries           `json:"trend"`
	Breakdown   CategoryBreakdown     `json:"breakdown"`
	Percentages []int64               `json:"percentages"`
	Summary     core.Summary          `json:"summary"`
	Categories  []Option              `json:"categories"`
}

// Build filters entries and derives the trend and breakdown from the filtered
// set.
func Build(entries []core.FinancialEntry, summary core.Summary, f FilterState, p Period) Report {
	filtered := Filter(entries, f)
	buckets := Aggregate(filtered, p)
	breakdown := Breakdown(filtered)
	return Report{
		Filter:      f,
		Period:      p,
		Entries:     filtered,
		Buckets:     buckets,
		Trend:       Trend(buckets),
		Breakdown:   breakdown,
		Percentages: breakdown.Percentages(),
		Summary:     summary,
		Categories:  CategoryOptions(entries),
	}
}
