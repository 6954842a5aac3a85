package inventory

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses s as a base-10 integer, returning def when s is
// empty or malformed. A valid zero or negative value is returned as-is;
// only parse failures collapse to the default.
func ParseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParseBool interprets the truthy spellings that show up in exported CSVs.
// Unrecognized values are false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return true
	default:
		return false
	}
}
