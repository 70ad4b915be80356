package calendar

import (
	"time"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/model"
)

// Today is the current calendar date in loc.
func Today(now time.Time, loc *time.Location) civil.Date {
	return civil.DateOf(now.In(loc))
}

// StartOfWeek returns the Monday on or before d.
func StartOfWeek(d civil.Date) civil.Date {
	offset := (int(weekday(d)) + 6) % 7
	return d.AddDays(-offset)
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
}

// AddMonths shifts the first of d's month by n months.
func AddMonths(d civil.Date, n int) civil.Date {
	return civil.DateOf(time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// DaysBetween lists every date from start through end inclusive.
func DaysBetween(start, end civil.Date) []civil.Date {
	var out []civil.Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

func SameMonth(a, b civil.Date) bool { return a.Year == b.Year && a.Month == b.Month }

func weekday(d civil.Date) time.Weekday { return d.In(time.UTC).Weekday() }

// FormatLong renders "Monday, October 26, 2026".
func FormatLong(d civil.Date) string { return d.In(time.UTC).Format("Monday, January 2, 2006") }

// FormatShort renders "Oct 26".
func FormatShort(d civil.Date) string { return d.In(time.UTC).Format("Jan 2") }

// WeekdayLabel renders "MON".
func WeekdayLabel(d civil.Date) string {
	return map[time.Weekday]string{
		time.Monday: "MON", time.Tuesday: "TUE", time.Wednesday: "WED", time.Thursday: "THU",
		time.Friday: "FRI", time.Saturday: "SAT", time.Sunday: "SUN",
	}[weekday(d)]
}

func rangeTitle(start, end civil.Date) string {
	return FormatShort(start) + " - " + end.In(time.UTC).Format("Jan 2, 2006")
}

// slotRange builds "HH:MM" labels from..to inclusive.
func slotRange(from, to model.Clock, step time.Duration) []string {
	var out []string
	end := to.Hour*60 + to.Minute
	for c := from; c.Hour*60+c.Minute <= end; c = c.Add(step) {
		out = append(out, c.String())
		if step <= 0 {
			break
		}
	}
	return out
}
