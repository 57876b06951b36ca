package matching

import (
	"strings"
	"time"
)

// DurationResult is the outcome of parsing a resume date range.
type DurationResult struct {
	StartParsed   string   `json:"start_date_parsed,omitempty"`
	EndParsed     string   `json:"end_date_parsed,omitempty"`
	DurationYears *float64 `json:"duration_years"`
	Note          string   `json:"note"`
}

// dateLayouts are tried in order when parsing resume-style date strings.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"2006",
}

// openEndedMarkers map to the current time when used as an end date.
var openEndedMarkers = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
}

// ParseDatesAndDuration parses start and end dates from resume-style
// strings and computes the duration in years, rounded to two decimals.
// Missing or unparseable dates, or an end before the start, yield a nil
// duration rather than an error: a bad date range on a resume is data, not
// a failure.
func ParseDatesAndDuration(startDate, endDate string) *DurationResult {
	start := parseResumeDate(startDate)
	end := parseResumeDate(endDate)

	result := &DurationResult{}
	if start != nil {
		result.StartParsed = start.Format(time.RFC3339)
	}
	if end != nil {
		result.EndParsed = end.Format(time.RFC3339)
	}

	if start == nil || end == nil || end.Before(*start) {
		result.Note = "Could not reliably compute duration from provided dates."
		return result
	}

	years := round2(end.Sub(*start).Hours() / 24 / 365)
	result.DurationYears = &years
	result.Note = "Duration computed from parsed start/end dates."
	return result
}

// parseResumeDate parses a single date string, returning nil when the
// string is empty or no layout matches.
func parseResumeDate(s string) *time.Time {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return nil
	}

	if openEndedMarkers[strings.ToLower(cleaned)] {
		now := time.Now()
		return &now
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return &t
		}
	}
	return nil
}
