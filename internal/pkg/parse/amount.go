package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// Amount parses a receipt amount such as "69,445원", "₩4,500" or "12345"
// into an integer KRW value. An amount that yields no digits at all is a hard
// failure; the pipeline treats it as fatal for the run.
func Amount(raw string) (int64, error) {
	numeric := nonNumeric.ReplaceAllString(raw, "")
	if numeric == "" {
		return 0, fmt.Errorf("amount %q contains no digits", raw)
	}

	// Receipts occasionally carry decimals; truncate like the expense forms do.
	if i := strings.Index(numeric, "."); i >= 0 {
		numeric = numeric[:i]
	}
	if numeric == "" {
		return 0, fmt.Errorf("amount %q contains no digits", raw)
	}

	value, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", raw, err)
	}
	return value, nil
}
