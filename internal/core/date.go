package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Layouts accepted by ParseDate, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date is a calendar instant normalised to UTC. A Date that failed to parse
// keeps the original text in Raw and reports Valid() == false, so callers
// can skip it instead of failing the whole collection.
type Date struct {
	time.Time
	Raw string
}

// ParseDate never fails; check Valid on the result.
func ParseDate(raw string) Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{Raw: raw}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC(), Raw: raw}
		}
	}
	return Date{Raw: raw}
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return DateOf(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

func DateOf(t time.Time) Date {
	t = t.UTC()
	return Date{Time: t, Raw: t.Format(time.RFC3339)}
}

func (d Date) Valid() bool {
	return !d.Time.IsZero()
}

func (d Date) String() string {
	if !d.Valid() {
		return d.Raw
	}
	return d.Time.Format(time.RFC3339)
}

// ISODay formats the date as yyyy-mm-dd, or returns Raw when invalid.
func (d Date) ISODay() string {
	if !d.Valid() {
		return d.Raw
	}
	return d.Time.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() && d.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts strings and numbers. Unparseable values become an
// invalid Date instead of an error.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Date{Raw: string(b)}
		return nil
	}
	*d = ParseDate(s)
	return nil
}
