package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// ParseDate parses an ISO date, accepting a trailing time part.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// CanonicalDate rewrites a date cell as YYYY-MM-DD.
func CanonicalDate(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.Format(time.DateOnly), nil
}

// IsExplicitFalse reports whether a flag cell is a parseable false.
// Missing or malformed flags are not false.
func IsExplicitFalse(valStr string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(valStr))
	return err == nil && !b
}

// NormalizeKey trims and NFC-normalises a location name so the same place
// spelled with composed or decomposed accents joins as one key.
func NormalizeKey(valStr string) string {
	return norm.NFC.String(strings.TrimSpace(valStr))
}
