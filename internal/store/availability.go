package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/model"
)

// DaySlots returns the host's configured slots for date, ordered by time.
// found is false when nothing is configured for that day.
func (s *Store) DaySlots(ctx context.Context, date civil.Date) ([]model.TimeSlot, bool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT slot_time, available
		 FROM availability_slots
		 WHERE slot_date = $1
		 ORDER BY slot_time`, date.String(),
	)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []model.TimeSlot
	for rows.Next() {
		var ts model.TimeSlot
		if err := rows.Scan(&ts.Time, &ts.Available); err != nil {
			return nil, false, err
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return out, len(out) > 0, nil
}

// SetSlot opens or closes one slot, creating the row when needed.
func (s *Store) SetSlot(ctx context.Context, date civil.Date, slot string, available bool) error {
	if _, err := model.ParseClock(slot); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO availability_slots (slot_date, slot_time, available)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (slot_date, slot_time)
		 DO UPDATE SET available = EXCLUDED.available, updated_at = NOW()`,
		date.String(), slot, available,
	)
	if err != nil {
		return fmt.Errorf("set slot %s %s: %w", date, slot, err)
	}
	return nil
}

// ClearDay drops a day's configuration so it falls back to fully open.
func (s *Store) ClearDay(ctx context.Context, date civil.Date) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM availability_slots WHERE slot_date = $1`, date.String())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
