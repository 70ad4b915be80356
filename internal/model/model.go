package model

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// EventType is one bookable entry of the static catalog.
type EventType struct {
	Title       string
	Description string
	Durations   []string
}

// SelectedEvent is the snapshot taken when an event card is picked.
type SelectedEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// Length parses the duration label ("30m"); zero when unparsable.
func (e SelectedEvent) Length() time.Duration {
	d, err := time.ParseDuration(e.Duration)
	if err != nil {
		return 0
	}
	return d
}

// CalendarView is the layout used on the calendar step.
type CalendarView string

const (
	ViewMonthly CalendarView = "monthly"
	ViewWeekly  CalendarView = "weekly"
	ViewColumn  CalendarView = "column"
)

func (v CalendarView) Valid() bool {
	switch v {
	case ViewMonthly, ViewWeekly, ViewColumn:
		return true
	}
	return false
}

// Slot is one bookable (date, time) opening. Time is "HH:MM".
type Slot struct {
	Date civil.Date `json:"date"`
	Time string     `json:"time"`
}

// Start places the slot in loc.
func (s Slot) Start(loc *time.Location) (time.Time, error) {
	clock, err := ParseClock(s.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(s.Date.Year, s.Date.Month, s.Date.Day, clock.Hour, clock.Minute, 0, 0, loc), nil
}

func (s Slot) String() string { return s.Date.String() + " " + s.Time }

// TimeSlot is a time label with its availability flag.
type TimeSlot struct {
	Time      string
	Available bool
}

// BookingFormData is the contact payload captured on the booking step.
type BookingFormData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Profile describes the host shown in the header and on invites.
type Profile struct {
	Name     string
	Email    string
	Headline string
	Location string
}

func (p Profile) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(p.Name) {
		b.WriteString(strings.ToUpper(part[:1]))
	}
	return b.String()
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour, Minute int
}

// ParseClock accepts "HH:MM" in 24h form.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("bad time %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// Add returns the clock shifted by d, wrapping past midnight.
func (c Clock) Add(d time.Duration) Clock {
	mins := (c.Hour*60 + c.Minute + int(d/time.Minute)) % (24 * 60)
	if mins < 0 {
		mins += 24 * 60
	}
	return Clock{Hour: mins / 60, Minute: mins % 60}
}
