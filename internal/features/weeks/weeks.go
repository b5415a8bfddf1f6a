// Package weeks counts lived weeks on a 52-weeks-per-year calendar.
//
// A year is deliberately treated as exactly 52 weeks, so counts drift from a
// 365.25-day calendar over a lifetime. Every chart index derives from this
// model; changing it moves every cell.
package weeks

import (
	"math"
	"time"
)

const (
	PerYear  = 52
	MaxYears = 90

	// Capacity is the number of cells on the chart (52 x 90).
	Capacity = PerYear * MaxYears
)

// Date truncates t to a calendar date in UTC, dropping clock and zone.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Lived returns the number of whole weeks between birthdate and today:
// full years count 52 weeks each, the days since the last birthday add one
// week per 7 days. A birthdate after today yields 0.
//
// The result is not capped; see Clamp.
func Lived(birthdate, today time.Time) int {
	birth := Date(birthdate)
	now := Date(today)
	if now.Before(birth) {
		return 0
	}

	yearsLived := now.Year() - birth.Year()
	if beforeBirthday(now, birth) {
		yearsLived--
	}

	// Feb 29 birthdays normalize to Mar 1 in common years.
	lastBirthday := time.Date(birth.Year()+yearsLived, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	extraDays := daysBetween(lastBirthday, now)
	if extraDays < 0 {
		extraDays = 0
	}

	return yearsLived*PerYear + extraDays/7
}

// Clamp caps lived at Capacity. full reports that lived overflowed the grid.
func Clamp(lived int) (weeks int, full bool) {
	if lived < 0 {
		return 0, false
	}
	if lived > Capacity {
		return Capacity, true
	}
	return lived, false
}

// MaxExpectancyIndex caps ExpectancyIndex for absurd or infinite inputs.
const MaxExpectancyIndex = math.MaxInt32

// ExpectancyIndex converts years to a week index, rounding halves to even.
// NaN and non-positive years map to 0.
func ExpectancyIndex(years float64) int {
	if !(years > 0) {
		return 0
	}
	index := math.RoundToEven(years * PerYear)
	if index >= MaxExpectancyIndex {
		return MaxExpectancyIndex
	}
	return int(index)
}

func beforeBirthday(now, birth time.Time) bool {
	if now.Month() != birth.Month() {
		return now.Month() < birth.Month()
	}
	return now.Day() < birth.Day()
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
