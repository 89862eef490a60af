package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the calendar key format used for pack files and asset directories
const DayLayout = "2006-01-02"

// Day represents the calendar date a pack is generated for
type Day struct {
	Date time.Time
}

// ResolveDay returns the calendar day of now as observed in the named time zone
func ResolveDay(tz string, now time.Time) (Day, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Day{}, fmt.Errorf("invalid time zone %q: %w", tz, err)
	}

	local := now.In(loc)
	return Day{Date: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)}, nil
}

// ParseDay parses a YYYY-MM-DD key
func ParseDay(key string) (Day, error) {
	date, err := time.Parse(DayLayout, strings.TrimSpace(key))
	if err != nil {
		return Day{}, fmt.Errorf("invalid date format: %w", err)
	}
	return Day{Date: date}, nil
}

// Key returns date in YYYY-MM-DD format
func (d Day) Key() string {
	return d.Date.Format(DayLayout)
}

// Seed returns the digits of the key as an integer (2024-03-01 -> 20240301)
func (d Day) Seed() int64 {
	seed, _ := strconv.ParseInt(strings.ReplaceAll(d.Key(), "-", ""), 10, 64)
	return seed
}
