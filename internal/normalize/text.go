package normalize

import (
	"regexp"
	"strings"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

var whitespace = regexp.MustCompile(`[\s\x{00a0}]+`)

// CleanText collapses non-breaking spaces, embedded newlines, tabs and
// repeated whitespace to single spaces and trims. Empty after trimming is
// missing: downstream must never see "" and nil as two different kinds of
// absent.
func CleanText(s string) (string, bool) {
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// CleanColumns applies CleanText to every string cell of the given columns.
func CleanColumns(t *table.Table, columns ...string) {
	for _, r := range t.Rows {
		for _, c := range columns {
			s, ok := r[c].(string)
			if !ok {
				continue
			}
			if cleaned, present := CleanText(s); present {
				r[c] = cleaned
			} else {
				r[c] = nil
			}
		}
	}
}

// LowerColumns lowercases string cells of the caller-specified columns.
func LowerColumns(t *table.Table, columns ...string) {
	for _, r := range t.Rows {
		for _, c := range columns {
			if s, ok := r[c].(string); ok {
				r[c] = strings.ToLower(s)
			}
		}
	}
}

// MapValues replaces exact (trimmed) matches of a controlled vocabulary in
// the given column. Values with no entry pass through unchanged: this is a
// best-effort canonicalization, not a validation gate.
func MapValues(t *table.Table, column string, lookup map[string]string) {
	for _, r := range t.Rows {
		s, ok := r[column].(string)
		if !ok {
			continue
		}
		if canonical, found := lookup[strings.TrimSpace(s)]; found {
			r[column] = canonical
		}
	}
}
