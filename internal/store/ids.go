package store

import (
	"fmt"
	"strconv"
	"strings"
)

// FarmKey renders a farm id the way records reference it.
func FarmKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID parses a record id from a path or cell value.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
