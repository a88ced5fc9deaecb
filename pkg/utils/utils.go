package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// BrDateLayout is the day/month/year layout used for every rental date.
	BrDateLayout = "02/01/2006"
	// TimeLayout is the hour:minute layout used for rental times.
	TimeLayout = "15:04"
)

var (
	brDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	timePattern   = regexp.MustCompile(`^\d{2}:\d{2}$`)
	whitespace    = regexp.MustCompile(`\s`)
)

// ParseBrDate parses a DD/MM/YYYY date at midnight in loc.
// Calendar-invalid dates such as 31/02/2024 are rejected.
func ParseBrDate(value string, loc *time.Location) (time.Time, bool) {
	if !brDatePattern.MatchString(value) {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	date, err := time.ParseInLocation(BrDateLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}

	return date, true
}

// IsValidBrDate reports whether value is a real DD/MM/YYYY calendar date
func IsValidBrDate(value string) bool {
	_, ok := ParseBrDate(value, time.UTC)
	return ok
}

// IsValidTimeHHmm reports whether value is a HH:MM time between 00:00 and 23:59
func IsValidTimeHHmm(value string) bool {
	if !timePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(TimeLayout, value)
	return err == nil
}

// CompareBrDateTime compares two date/time pairs and returns -1, 0 or 1.
// Callers must validate the formats first; malformed values compare as the zero time.
func CompareBrDateTime(startDate, startTime, endDate, endTime string) int {
	start := combine(startDate, startTime)
	end := combine(endDate, endTime)

	switch {
	case start.Equal(end):
		return 0
	case start.Before(end):
		return -1
	default:
		return 1
	}
}

func combine(date, clock string) time.Time {
	t, err := time.ParseInLocation(BrDateLayout+" "+TimeLayout, date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// StartOfDay truncates t to midnight of its own calendar day, in its own location
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// FormatBrDate renders t as DD/MM/YYYY
func FormatBrDate(t time.Time) string {
	return t.Format(BrDateLayout)
}

// ParseDecimalInput parses user-typed amounts such as "1.234,56", "12,5" or "12.5".
// Blank or unparsable input yields zero.
func ParseDecimalInput(raw string) decimal.Decimal {
	normalized := whitespace.ReplaceAllString(strings.TrimSpace(raw), "")
	if normalized == "" {
		return decimal.Zero
	}

	if strings.Contains(normalized, ",") {
		if strings.Contains(normalized, ".") {
			normalized = strings.ReplaceAll(normalized, ".", "")
		}
		normalized = strings.Replace(normalized, ",", ".", 1)
	}

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero
	}

	return value
}

// TrimToNil trims value and returns nil when nothing is left
func TrimToNil(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringValue dereferences value, returning "" for nil
func StringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
