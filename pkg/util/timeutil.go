package util

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format exchanged with the wardrobe service.
const DateLayout = "2006-01-02"

// NowLocal exposes time.Now for deterministic testing.
func NowLocal() time.Time {
	return time.Now()
}

// ResolveDate returns input when it is a valid YYYY-MM-DD date, or today's date when input is blank.
func ResolveDate(input string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return now.Format(DateLayout), nil
	}
	if _, err := time.Parse(DateLayout, trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}
