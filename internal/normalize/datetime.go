package normalize

import (
	"strings"
	"time"
)

// Indonesian month names and abbreviations, translated to English before
// generic parsing. Full names come first so "Agustus" is not half-replaced
// through its "Agu" prefix.
var monthReplacer = strings.NewReplacer(
	"Januari", "January",
	"Februari", "February",
	"Pebruari", "February",
	"Maret", "March",
	"Mei", "May",
	"Juni", "June",
	"Juli", "July",
	"Agustus", "August",
	"Oktober", "October",
	"Desember", "December",
	"Peb", "Feb",
	"Agu", "Aug",
	"Agt", "Aug",
	"Ags", "Aug",
	"Okt", "Oct",
	"Des", "Dec",
)

// Day-first layouts are tried first; the exports are Indonesian and write
// 02/01/2006 for January 2nd.
var dayFirstLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"2 January 2006 15:04",
	"2 January 2006",
}

// A small subset of rows still carries month-first or ISO timestamps; those
// are the fallback, not the default.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
}

// ParseTime reads a timestamp from a dirty export cell. Unparseable values
// are missing, never an error.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = monthReplacer.Replace(s)

	for _, layout := range dayFirstLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range fallbackLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
