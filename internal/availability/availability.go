// Package availability answers "may this (date, time) be booked?".
//
// Every calendar view asks a Source; the sources here range from static placeholders to the
// host's availability table in Postgres. An empty slot string asks about the whole day.
package availability

import (
	"context"
	"sync"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/model"
)

// Source reports availability for a slot, or for a whole day when slot is "".
type Source interface {
	Available(ctx context.Context, date civil.Date, slot string) (bool, error)
}

// Always marks everything available.
type Always struct{}

func (Always) Available(context.Context, civil.Date, string) (bool, error) { return true, nil }

// Dates restricts availability to an explicit list of days. A nil Dates is Always.
type Dates struct {
	set map[civil.Date]struct{}
}

func NewDates(days ...civil.Date) *Dates {
	d := &Dates{set: make(map[civil.Date]struct{}, len(days))}
	for _, day := range days {
		d.set[day] = struct{}{}
	}
	return d
}

func (d *Dates) Available(_ context.Context, date civil.Date, _ string) (bool, error) {
	if d == nil {
		return true, nil
	}
	_, ok := d.set[date]
	return ok, nil
}

// Slots is keyed by ISO date. A date with no entry is fully available; a date with an
// entry only offers the slots flagged available there.
type Slots struct {
	mu   sync.RWMutex
	days map[string][]model.TimeSlot
}

func NewSlots(days map[string][]model.TimeSlot) *Slots {
	s := &Slots{days: make(map[string][]model.TimeSlot, len(days))}
	for k, v := range days {
		s.days[k] = append([]model.TimeSlot(nil), v...)
	}
	return s
}

// Set replaces the entry for one date.
func (s *Slots) Set(date civil.Date, slots []model.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[date.String()] = append([]model.TimeSlot(nil), slots...)
}

func (s *Slots) Available(_ context.Context, date civil.Date, slot string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.days[date.String()]
	if !ok {
		return true, nil
	}
	return lookup(entries, slot), nil
}

func lookup(entries []model.TimeSlot, slot string) bool {
	for _, e := range entries {
		if slot == "" && e.Available {
			return true
		}
		if e.Time == slot {
			return e.Available
		}
	}
	return false
}

// Predicate is the rule shared by all views: never before today, then ask the source.
func Predicate(ctx context.Context, src Source, today, date civil.Date, slot string) (bool, error) {
	if date.Before(today) {
		return false, nil
	}
	if src == nil {
		return true, nil
	}
	return src.Available(ctx, date, slot)
}
