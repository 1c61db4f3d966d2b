package parse

import (
	"regexp"
	"strings"
)

// Branch suffixes that merchants append to their brand name on receipts
// ("스타벅스 강남점", "이마트 성수지점"). Stripping them collapses all branches
// of one brand onto a single pattern key.
var branchSuffix = regexp.MustCompile(`\s*\S*(점|지점|영업소|매장)$`)

var whitespace = regexp.MustCompile(`\s+`)

// Location normalizes a usage location for pattern lookup: trims and collapses
// whitespace, strips a trailing branch designator, and falls back to the
// supplied sentinel when nothing remains.
func Location(raw, sentinel string) string {
	cleaned := whitespace.ReplaceAllString(strings.TrimSpace(raw), " ")
	if cleaned == "" {
		return sentinel
	}

	// Only strip the branch token when something is left in front of it;
	// a location that IS the suffix ("본점") stays as-is.
	if stripped := branchSuffix.ReplaceAllString(cleaned, ""); strings.TrimSpace(stripped) != "" {
		cleaned = strings.TrimSpace(stripped)
	}

	if cleaned == "" {
		return sentinel
	}
	return cleaned
}
