package parse

import (
	"fmt"
	"strings"

	"github.com/mvdheuvel/jeevesbot/internal/domain"
)

// Separator between the four logical fields of an appointment command. The
// same character appears inside the dotted date and time formats, which is
// what the multi-segment recovery in resolveSegments deals with.
const separator = "."

// ParseInput parses a raw composite command string of the shape
// "DATE. TIME. Contact Name. Category" into a draft appointment with
// canonical date and time. All failures are returned as displayable errors
// naming the offending token.
func ParseInput(raw string) (*domain.Draft, error) {
	segments := splitSegments(raw)
	if len(segments) < 4 {
		return nil, fmt.Errorf("expected 4 fields separated by %q (date, time, contact name, category), got %d",
			separator, len(segments))
	}

	dateStr, timeStr, contact, category := resolveSegments(segments)

	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	tm, err := ParseTime(timeStr)
	if err != nil {
		return nil, err
	}

	return &domain.Draft{
		Date:        date.Canonical(),
		Time:        tm.Canonical(),
		ContactName: contact,
		Category:    category,
	}, nil
}

// splitSegments splits raw input on the field separator, trims each segment
// and drops empty ones.
func splitSegments(raw string) []string {
	parts := strings.Split(raw, separator)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// resolveSegments maps the trimmed segments onto the four logical fields.
// With exactly four segments the mapping is positional. With more, the field
// separator collided with a dotted date and/or time format and the intended
// grouping has to be recovered. Reconstructions are tried in this order:
//
//  1. dotted date: everything up to the last three segments rejoined as the
//     date, the next segment as the time
//     ("24.12.2025. 10:30. A. B" -> date "24.12.2025");
//  2. dotted date and dotted time: the last four segments are time (two,
//     rejoined), contact and category, everything before them is the date
//     ("24.12.25. 9.30. A. B" -> date "24.12.25", time "9.30");
//  3. dotted time only: segments two and three rejoined as the time, with
//     any surplus folded into the category
//     ("24-12-25. 9.30. A. De Boer B.V" -> category "De Boer B.V").
//
// A reconstruction is accepted when both its date and time normalize. When
// none does, the positional mapping is returned so the normalizer reports
// the offending token.
func resolveSegments(segments []string) (date, tm, contact, category string) {
	if len(segments) == 4 {
		return segments[0], segments[1], segments[2], segments[3]
	}
	n := len(segments)

	d := strings.Join(segments[:n-3], separator)
	t := segments[n-3]
	if normalizes(d, t) {
		return d, t, segments[n-2], segments[n-1]
	}

	d = strings.Join(segments[:n-4], separator)
	t = segments[n-4] + separator + segments[n-3]
	if normalizes(d, t) {
		return d, t, segments[n-2], segments[n-1]
	}

	if n >= 5 {
		d = segments[0]
		t = segments[1] + separator + segments[2]
		if normalizes(d, t) {
			return d, t, segments[3], strings.Join(segments[4:], separator)
		}
	}

	return segments[0], segments[1], segments[2], segments[3]
}

// normalizes reports whether a candidate date/time pair parses cleanly.
func normalizes(date, tm string) bool {
	if _, err := ParseDate(date); err != nil {
		return false
	}
	if _, err := ParseTime(tm); err != nil {
		return false
	}
	return true
}
