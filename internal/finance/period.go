package finance

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"farmflow/internal/core"
)

const (
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

type (
	// Period is the bucket granularity of the trend chart.
	Period string

	// Bucket holds the income and expense totals of one period.
	Bucket struct {
		Label    string          `json:"label"`
		Income   decimal.Decimal `json:"income"`
		Expenses decimal.Decimal `json:"expenses"`

		key periodKey
	}

	// TrendSeries is the chart-ready form of a bucket list: three parallel
	// arrays of equal length.
	TrendSeries struct {
		Labels   []string          `json:"labels"`
		Income   []decimal.Decimal `json:"income"`
		Expenses []decimal.Decimal `json:"expenses"`
	}

	periodKey struct {
		year int
		sub  int // month 1-12, quarter 1-4, or 0 for yearly
	}
)

// ParsePeriod maps user input to a Period. Empty input selects Monthly.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Monthly, nil
	case Monthly, Quarterly, Yearly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

func (p Period) Valid() bool {
	switch p {
	case Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// Window is the number of most recent buckets kept for the period.
// Unknown periods bucket like Yearly.
func (p Period) Window() int {
	switch p {
	case Monthly:
		return 12
	case Quarterly:
		return 8
	default:
		return 5
	}
}

// Label renders t as "Jan 2024", "Q1 2024" or "2024".
func Label(t time.Time, p Period) string {
	t = t.UTC()
	switch p {
	case Monthly:
		return t.Format("Jan 2006")
	case Quarterly:
		return fmt.Sprintf("Q%d %d", quarter(t), t.Year())
	default:
		return strconv.Itoa(t.Year())
	}
}

func quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

func keyFor(t time.Time, p Period) periodKey {
	t = t.UTC()
	switch p {
	case Monthly:
		return periodKey{year: t.Year(), sub: int(t.Month())}
	case Quarterly:
		return periodKey{year: t.Year(), sub: quarter(t)}
	default:
		return periodKey{year: t.Year()}
	}
}

func (k periodKey) compare(o periodKey) int {
	if c := cmp.Compare(k.year, o.year); c != 0 {
		return c
	}
	return cmp.Compare(k.sub, o.sub)
}

// Aggregate buckets entries by period, oldest first, and keeps only the
// most recent Window() buckets. Income adds to Income and every other type
// to Expenses, both by magnitude. Entries with an invalid date are skipped.
// Periods without entries produce no bucket.
func Aggregate(entries []core.FinancialEntry, p Period) []Bucket {
	index := make(map[periodKey]int)
	buckets := make([]Bucket, 0)
	for _, e := range entries {
		if !e.Date.Valid() {
			continue
		}
		k := keyFor(e.Date.Time, p)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, Bucket{
				Label:    Label(e.Date.Time, p),
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
				key:      k,
			})
		}
		if e.Type == core.Income {
			buckets[i].Income = buckets[i].Income.Add(e.Magnitude())
		} else {
			buckets[i].Expenses = buckets[i].Expenses.Add(e.Magnitude())
		}
	}

	slices.SortFunc(buckets, func(a, b Bucket) int { return a.key.compare(b.key) })
	if w := p.Window(); len(buckets) > w {
		buckets = buckets[len(buckets)-w:]
	}
	return buckets
}

// Trend converts buckets into parallel series.
func Trend(buckets []Bucket) TrendSeries {
	s := TrendSeries{
		Labels:   make([]string, len(buckets)),
		Income:   make([]decimal.Decimal, len(buckets)),
		Expenses: make([]decimal.Decimal, len(buckets)),
	}
	for i, b := range buckets {
		s.Labels[i] = b.Label
		s.Income[i] = b.Income
		s.Expenses[i] = b.Expenses
	}
	return s
}

func (s TrendSeries) Len() int { return len(s.Labels) }
