package sheetpulse

import (
	"testing"
	"time"
)

func TestWindows(t *testing.T) {
	today := NewDate(2024, time.August, 20)

	t.Run("month to date", func(t *testing.T) {
		current, shadow := Windows(MonthToDate, today, Range{})
		if current.From != NewDate(2024, time.August, 1) || current.To != today {
			t.Errorf("current = %s..%s", current.From, current.To)
		}
		if shadow.To != NewDate(2024, time.July, 31) {
			t.Errorf("shadow ends %s, want July 31", shadow.To)
		}
		if shadow.Days() != current.Days() {
			t.Errorf("shadow %d days, current %d days", shadow.Days(), current.Days())
		}
	})

	t.Run("quarter to date", func(t *testing.T) {
		current, _ := Windows(QuarterToDate, today, Range{})
		if current.From != NewDate(2024, time.July, 1) {
			t.Errorf("current starts %s, want July 1", current.From)
		}
	})

	t.Run("year to date", func(t *testing.T) {
		current, shadow := Windows(YearToDate, today, Range{})
		if current.From != NewDate(2024, time.January, 1) {
			t.Errorf("current starts %s", current.From)
		}
		if shadow.To != NewDate(2023, time.December, 31) {
			t.Errorf("shadow ends %s", shadow.To)
		}
	})

	t.Run("rolling 12 months shadows the prior 12", func(t *testing.T) {
		current, shadow := Windows(Rolling12Months, today, Range{})
		if current.From != NewDate(2023, time.August, 21) {
			t.Errorf("current starts %s, want 2023-08-21", current.From)
		}
		if shadow.To != NewDate(2023, time.August, 20) {
			t.Errorf("shadow ends %s, want 2023-08-20", shadow.To)
		}
		if shadow.From != NewDate(2022, time.August, 21) {
			t.Errorf("shadow starts %s, want 2022-08-21", shadow.From)
		}
	})

	t.Run("all time has no shadow", func(t *testing.T) {
		current, shadow := Windows(AllTime, today, Range{})
		if !current.Contains(NewDate(1999, time.June, 1)) {
			t.Error("all-time window should reach far back")
		}
		if !shadow.IsZero() {
			t.Errorf("shadow = %s..%s, want zero range", shadow.From, shadow.To)
		}
		if shadow.Contains(today) {
			t.Error("zero shadow must contain nothing")
		}
	})

	t.Run("custom range used as given", func(t *testing.T) {
		custom := NewRange(NewDate(2024, time.March, 1), NewDate(2024, time.March, 10))
		current, shadow := Windows(CustomRange, today, custom)
		if current != custom {
			t.Errorf("current = %s..%s", current.From, current.To)
		}
		if shadow.Days() != 10 {
			t.Errorf("shadow %d days, want 10", shadow.Days())
		}
		if shadow.To != NewDate(2024, time.February, 29) {
			t.Errorf("shadow ends %s, want Feb 29", shadow.To)
		}
	})
}
