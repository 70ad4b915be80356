package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/store"
)

func fixedNow(t *testing.T) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	prev := now
	now = func() time.Time { return time.Date(2026, time.October, 21, 10, 0, 0, 0, loc) }
	t.Cleanup(func() { now = prev })
	t.Setenv("DATABASE_URL", "")
}

func mockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	prev := openDB
	openDB = func(context.Context, string) (store.DB, func(), error) { return mock, func() {}, nil }
	t.Cleanup(func() {
		openDB = prev
		mock.Close()
	})
	return mock
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Execute(args, &out)
	return out.String(), err
}

func TestEvents(t *testing.T) {
	out, err := run(t, "events")
	require.NoError(t, err)
	assert.Contains(t, out, "Sanskar Yadav")
	assert.Contains(t, out, "Interviews")
	assert.Contains(t, out, "30m, 60m")

	out, err = run(t, "--json", "events")
	require.NoError(t, err)
	var got struct {
		Events []struct{ Title string }
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Events, 5)
	assert.Equal(t, "Recurring Event", got.Events[4].Title)
}

func TestSlots(t *testing.T) {
	fixedNow(t)

	tests := []struct {
		name  string
		args  []string
		title string
	}{
		{"month", []string{"slots"}, "October 2026"},
		{"next week", []string{"slots", "--view", "weekly", "--offset", "1"}, "Oct 26 - Nov 1, 2026"},
		{"previous month", []string{"slots", "--offset=-1"}, "September 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.title)
			assert.Contains(t, out, "MON")
		})
	}

	_, err := run(t, "slots", "--view", "yearly")
	assert.Error(t, err)
}

func TestSlotsAvailableDates(t *testing.T) {
	fixedNow(t)
	out, err := run(t, "slots", "--available-dates", "2026-10-22,2026-10-30")
	require.NoError(t, err)
	assert.Contains(t, out, "22")
	assert.Contains(t, out, "30")
	assert.NotContains(t, out, "23")

	_, err = run(t, "slots", "--available-dates", "tomorrow")
	assert.Error(t, err)
}

func TestBookWritesInvite(t *testing.T) {
	fixedNow(t)
	path := filepath.Join(t.TempDir(), "meeting.ics")

	out, err := run(t, "book", "--event", "Interviews", "--date", "2026-11-10", "--time", "14:00",
		"--name", "Jane Doe", "--email", "jane@x.com", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Interviews between Sanskar Yadav and Jane Doe")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "BEGIN:VCALENDAR")
	assert.Contains(t, string(raw), "DTSTART:20261110T083000Z")
}

func TestBookRejectsForm(t *testing.T) {
	fixedNow(t)
	out, err := run(t, "book", "--event", "Interviews", "--date", "2026-10-26", "--time", "14:00",
		"--email", "nope", "-o", "-")
	assert.True(t, errors.Is(err, booking.ErrInvalid))
	assert.Contains(t, out, "--name: Name is required")
	assert.Contains(t, out, "--email: Please enter a valid email")
}

func TestBookRejectsPastSlot(t *testing.T) {
	fixedNow(t)
	_, err := run(t, "book", "--event", "Interviews", "--date", "2026-10-19", "--time", "14:00",
		"--name", "Jane", "--email", "jane@x.com", "-o", "-")
	assert.Error(t, err)
}

func TestAvailabilitySet(t *testing.T) {
	mock := mockDB(t)
	for _, slot := range []string{"14:00", "14:15"} {
		mock.ExpectExec("INSERT INTO availability_slots").
			WithArgs("2026-10-26", slot, false).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	out, err := run(t, "--database-url", "postgres://test", "availability", "set", "2026-10-26", "14:00", "14:15", "--closed")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-10-26: 2 slot(s) closed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityShowAndClear(t *testing.T) {
	mock := mockDB(t)
	mock.ExpectQuery("SELECT slot_time, available").WithArgs("2026-10-26").
		WillReturnRows(pgxmock.NewRows([]string{"slot_time", "available"}).
			AddRow("14:00", true).
			AddRow("14:15", false))
	mock.ExpectExec("DELETE FROM availability_slots").WithArgs("2026-10-26").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	out, err := run(t, "--database-url", "postgres://test", "availability", "show", "2026-10-26")
	require.NoError(t, err)
	assert.Contains(t, out, "14:15")
	assert.Contains(t, out, "false")

	out, err = run(t, "--database-url", "postgres://test", "availability", "clear", "2026-10-26")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 2 slot(s)")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityNeedsDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := run(t, "availability", "clear", "2026-10-26")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
