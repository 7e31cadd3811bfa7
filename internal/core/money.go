// Package core holds the FarmFlow domain types and the conversions shared by
// every store.
//
// Amounts are decimal.Decimal throughout. Stored values arrive as loose text
// (JSON numbers, spreadsheet cells, SQLite TEXT columns) and are normalised
// here so a single malformed record never breaks a list.
package core

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts loose text to a decimal. It strips surrounding spaces,
// a leading currency sign and thousands separators. Malformed input yields
// zero; use ParseAmountStrict when the caller must reject it.
func ParseAmount(raw string) decimal.Decimal {
	d, err := ParseAmountStrict(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func ParseAmountStrict(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if neg {
		s = "-" + s
	}
	return decimal.NewFromString(s)
}

// FlexString decodes from either a JSON string or a JSON number and keeps the
// text. Farm references and form amounts arrive in both shapes.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}
