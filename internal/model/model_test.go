package model

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestSlotStart(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	s := Slot{Date: civil.Date{Year: 2026, Month: time.October, Day: 26}, Time: "14:00"}
	got, err := s.Start(loc)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	want := time.Date(2026, time.October, 26, 14, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %v want %v", got, want)
	}
	if s.String() != "2026-10-26 14:00" {
		t.Errorf("string: %s", s)
	}

	if _, err := (Slot{Time: "2pm"}).Start(loc); err == nil {
		t.Error("expected error for bad time")
	}
}

func TestSelectedEventLength(t *testing.T) {
	if d := (SelectedEvent{Duration: "45m"}).Length(); d != 45*time.Minute {
		t.Errorf("got %v", d)
	}
	if d := (SelectedEvent{Duration: "soon"}).Length(); d != 0 {
		t.Errorf("got %v", d)
	}
}

func TestClock(t *testing.T) {
	c, err := ParseClock("16:45")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Add(30*time.Minute).String() != "17:15" {
		t.Errorf("add: %s", c.Add(30*time.Minute))
	}
	if (Clock{Hour: 23, Minute: 50}).Add(20*time.Minute).String() != "00:10" {
		t.Error("expected wrap past midnight")
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Error("expected error")
	}
}

func TestViewValid(t *testing.T) {
	for _, v := range []CalendarView{ViewMonthly, ViewWeekly, ViewColumn} {
		if !v.Valid() {
			t.Errorf("%s should be valid", v)
		}
	}
	if CalendarView("agenda").Valid() {
		t.Error("agenda should be invalid")
	}
}

func TestInitials(t *testing.T) {
	if got := (Profile{Name: "Sanskar Yadav"}).Initials(); got != "SY" {
		t.Errorf("got %s", got)
	}
}
