package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The two parser error classes. ErrUnrecognized means a token matched none
// of the accepted shapes; ErrInvalid means a shape matched but the value is
// not a real calendar date or clock time.
var (
	ErrUnrecognized = errors.New("unrecognized format")
	ErrInvalid      = errors.New("invalid value")
)

// Date is a normalized calendar date.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Canonical returns the DD-MM-YYYY form.
func (d Date) Canonical() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}

// Time is a normalized wall-clock time.
type Time struct {
	Hour   int
	Minute int
}

// Canonical returns the HH:MM form.
func (t Time) Canonical() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Accepted date shapes in priority order. The first shape that matches wins;
// a match that turns out semantically impossible is rejected outright, it
// never falls through to a later shape.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`),   // DD-MM-YYYY
	regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{2})$`),   // DD-MM-YY
	regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`), // DD.MM.YYYY
	regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2})$`), // DD.MM.YY
	regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})$`),         // DDMMYY
	regexp.MustCompile(`^(\d{2})(\d{2})(\d{4})$`),         // DDMMYYYY
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2}):(\d{2})$`),  // HH:MM
	regexp.MustCompile(`^(\d{1,2})\.(\d{2})$`), // HH.MM
}

// ParseDate normalizes a raw date token against the accepted shapes.
// Two-digit years are always interpreted as 21st century.
func ParseDate(raw string) (Date, error) {
	for _, re := range datePatterns {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}

		if !validDate(day, month, year) {
			return Date{}, fmt.Errorf("%w: date %q does not exist", ErrInvalid, raw)
		}
		return Date{Day: day, Month: month, Year: year}, nil
	}

	return Date{}, fmt.Errorf("%w: date %q (supported formats: %s)",
		ErrUnrecognized, raw, strings.Join(SupportedDateFormats(), ", "))
}

// ParseTime normalizes a raw time token against the accepted shapes.
func ParseTime(raw string) (Time, error) {
	for _, re := range timePatterns {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])

		if hour > 23 || minute > 59 {
			return Time{}, fmt.Errorf("%w: time %q (hours must be 00-23, minutes 00-59)", ErrInvalid, raw)
		}
		return Time{Hour: hour, Minute: minute}, nil
	}

	return Time{}, fmt.Errorf("%w: time %q (supported formats: %s)",
		ErrUnrecognized, raw, strings.Join(SupportedTimeFormats(), ", "))
}

// validDate checks that day/month/year round-trips through a real calendar
// date (rejects e.g. 31-02 and month 13).
func validDate(day, month, year int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month && t.Year() == year
}

// SupportedDateFormats lists example forms for help texts and error messages.
func SupportedDateFormats() []string {
	return []string{"24-12-2025", "24-12-25", "24.12.2025", "24.12.25", "241225", "24122025"}
}

// SupportedTimeFormats lists example forms for help texts and error messages.
func SupportedTimeFormats() []string {
	return []string{"10:30", "10.30"}
}
