package availability

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/model"
)

// DayReader loads the host's configured slots for one day. found is false when the host
// has not configured that day at all.
type DayReader interface {
	DaySlots(ctx context.Context, date civil.Date) (slots []model.TimeSlot, found bool, err error)
}

// Stored reads availability from the host's table, with the same defaulting as Slots.
type Stored struct {
	Reader DayReader
}

func (s Stored) Available(ctx context.Context, date civil.Date, slot string) (bool, error) {
	entries, found, err := s.Reader.DaySlots(ctx, date)
	if err != nil {
		return false, fmt.Errorf("availability for %s: %w", date, err)
	}
	if !found {
		return true, nil
	}
	return lookup(entries, slot), nil
}
