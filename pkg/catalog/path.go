package catalog

import (
	"fmt"
	"strings"
	"time"
)

// MalformedPathError reports a stored key that does not decode into the
// category/YYYY/MM/DD/filename scheme.
type MalformedPathError struct {
	Path   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed object path %q: %s", e.Path, e.Reason)
}

// FormatDate renders a time as the lexically sortable "YYYY/MM/DD" form
// used throughout the catalog.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d", t.Year(), int(t.Month()), t.Day())
}

// EncodePath builds the stored key for a document:
// category/YYYY/MM/DD/filename.
func EncodePath(category, filename string, t time.Time) string {
	return category + "/" + FormatDate(t) + "/" + filename
}

// DecodePath parses a stored key into an Entry. The layer and size are not
// part of the key; callers fill them from the listing context.
//
// Date comparison everywhere is plain string comparison, which only orders
// correctly with fixed-width fields, so the month and day segments are
// normalized to two digits here ("2" becomes "02"). The original key is
// kept verbatim in Path; it remains the fetch key.
func DecodePath(path string) (Entry, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 4 {
		return Entry{}, &MalformedPathError{Path: path, Reason: "want category/year/month/day/filename"}
	}

	year := parts[1]
	if len(year) != 4 || !allDigits(year) {
		return Entry{}, &MalformedPathError{Path: path, Reason: fmt.Sprintf("year %q is not four digits", year)}
	}
	month, ok := padDigits(parts[2])
	if !ok {
		return Entry{}, &MalformedPathError{Path: path, Reason: fmt.Sprintf("month %q is not numeric", parts[2])}
	}
	day, ok := padDigits(parts[3])
	if !ok {
		return Entry{}, &MalformedPathError{Path: path, Reason: fmt.Sprintf("day %q is not numeric", parts[3])}
	}

	return Entry{
		Path:     path,
		Category: parts[0],
		Filename: parts[len(parts)-1],
		Date:     year + "/" + month + "/" + day,
	}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// padDigits left-pads a one or two digit segment to width two.
func padDigits(s string) (string, bool) {
	if len(s) > 2 || !allDigits(s) {
		return "", false
	}
	if len(s) == 1 {
		s = "0" + s
	}
	return s, true
}
