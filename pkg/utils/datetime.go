package utils

import (
	"fmt"
	"strings"
	"time"
)

// Boundary layouts: dd/MM/yyyy and HH:mm.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// ParseDateTime combines a dd/MM/yyyy date and an HH:mm time in loc.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout,
		strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q or time %q: %w", date, clock, err)
	}
	return t, nil
}

// ParseDate reads a dd/MM/yyyy date at midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimeLayout)
}
