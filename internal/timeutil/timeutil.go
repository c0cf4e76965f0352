// Package timeutil provides time conversion utilities for the Terp time tracking system.
// All time-of-day values are represented as minutes from midnight (0-1439).
// Durations are represented as minutes.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in a day (1440).
const MinutesPerDay = 1440

// TimeToMinutes converts a time.Time to minutes from midnight.
func TimeToMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesToString formats minutes as "HH:MM".
// For durations >= 24 hours, hours will exceed 23 (e.g., 1500 -> "25:00").
func MinutesToString(minutes int) string {
	if minutes < 0 {
		return "-" + MinutesToString(-minutes)
	}
	h := minutes / 60
	m := minutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// NormalizeCrossMidnight handles times that span midnight.
// If endMinutes < startMinutes, adds MinutesPerDay to endMinutes.
// Returns the normalized end minutes.
func NormalizeCrossMidnight(startMinutes, endMinutes int) int {
	if endMinutes < startMinutes {
		return endMinutes + MinutesPerDay
	}
	return endMinutes
}

// ErrInvalidQuincena indicates a fortnight selector other than 1 or 2.
var ErrInvalidQuincena = errors.New("invalid quincena: expected 1 or 2")

// WeekRange returns the Monday-to-Sunday week containing date, as
// civil midnight timestamps in date's location.
func WeekRange(date time.Time) (time.Time, time.Time) {
	date = truncateToDate(date)
	// time.Monday == 1, time.Sunday == 0; shift so Monday is 0.
	offset := (int(date.Weekday()) + 6) % 7
	start := date.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// MonthRange returns the first and last day of the given calendar
// month, as civil midnight timestamps in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// QuincenaRange returns the fortnight boundaries within a month:
// quincena 1 is days 1-15, quincena 2 is day 16 through month end.
// Returns ErrInvalidQuincena for any other quincena value.
func QuincenaRange(year int, month time.Month, quincena int, loc *time.Location) (time.Time, time.Time, error) {
	switch quincena {
	case 1:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc), time.Date(year, month, 15, 0, 0, 0, 0, loc), nil
	case 2:
		start := time.Date(year, month, 16, 0, 0, 0, 0, loc)
		_, end := MonthRange(year, month, loc)
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, ErrInvalidQuincena
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Night window: civil-local [21:00, 06:00).
const (
	NightStartMinute = 21 * 60 // 1260
	NightEndMinute   = 6 * 60  // 360
)

// ErrDegenerateInterval indicates entry and exit fall on the same minute.
var ErrDegenerateInterval = errors.New("invalid interval: entry equals exit")

// IntervalHours returns the duration between entry and exit, in hours at
// minute resolution. If exit is earlier than entry it is treated as a
// next-day crossing. Fails with ErrDegenerateInterval when the two
// times are identical.
func IntervalHours(entryMinutes, exitMinutes int) (float64, error) {
	if entryMinutes == exitMinutes {
		return 0, ErrDegenerateInterval
	}
	end := NormalizeCrossMidnight(entryMinutes, exitMinutes)
	return float64(end-entryMinutes) / 60, nil
}

// isNightMinute reports whether a minute-of-day (already taken mod
// MinutesPerDay) falls in the night window [21:00, 24:00) ∪ [00:00, 06:00).
func isNightMinute(minuteOfDay int) bool {
	return minuteOfDay >= NightStartMinute || minuteOfDay < NightEndMinute
}

// NocturnalMinutes counts how many minutes of [entry, exit) fall in the
// night window, handling a midnight-crossing interval correctly.
func NocturnalMinutes(entryMinutes, exitMinutes int) int {
	end := NormalizeCrossMidnight(entryMinutes, exitMinutes)
	total := 0
	for m := entryMinutes; m < end; m++ {
		if isNightMinute(m % MinutesPerDay) {
			total++
		}
	}
	return total
}

// Weekday returns the day of week for t, with 0=Monday...6=Sunday,
// matching the convention used throughout the attendance domain
// (as opposed to time.Time's own 0=Sunday).
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsSunday reports whether t falls on a Sunday.
func IsSunday(t time.Time) bool {
	return t.Weekday() == time.Sunday
}
