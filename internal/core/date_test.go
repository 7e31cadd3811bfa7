package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		day   string
	}{
		{"2024-03-15", true, "2024-03-15"},
		{"2024-03-15T10:30:00Z", true, "2024-03-15"},
		{"2024-03-15T23:30:00-05:00", true, "2024-03-16"},
		{"2024-03-15T10:30:00.123Z", true, "2024-03-15"},
		{"2024-03-15T10:30:00", true, "2024-03-15"},
		{"2024-03-15 10:30:00", true, "2024-03-15"},
		{"", false, ""},
		{"not a date", false, "not a date"},
		{"2024-13-01", false, "2024-13-01"},
	}
	for _, tc := range cases {
		d := ParseDate(tc.in)
		assert.Equal(t, tc.valid, d.Valid(), "input %q", tc.in)
		assert.Equal(t, tc.day, d.ISODay(), "input %q", tc.in)
		if d.Valid() {
			assert.Equal(t, time.UTC, d.Location())
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 1, 2)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T00:00:00Z"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))

	var bad Date
	require.NoError(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
	assert.False(t, bad.Valid())
	assert.Equal(t, "yesterday", bad.Raw)

	b, err = json.Marshal(bad)
	require.NoError(t, err)
	assert.Equal(t, `"yesterday"`, string(b))

	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var num Date
	require.NoError(t, json.Unmarshal([]byte(`1700000000`), &num))
	assert.False(t, num.Valid())
}
