package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

var day = civil.Date{Year: 2026, Month: time.October, Day: 21}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestDaySlots(t *testing.T) {
	mock := newMock(t)
	rows := pgxmock.NewRows([]string{"slot_time", "available"}).
		AddRow("12:00", true).
		AddRow("12:15", false)
	mock.ExpectQuery("SELECT slot_time, available").WithArgs("2026-10-21").WillReturnRows(rows)

	slots, found, err := New(mock).DaySlots(context.Background(), day)
	if err != nil {
		t.Fatalf("day slots: %v", err)
	}
	if !found || len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %v found=%v", slots, found)
	}
	if slots[1].Time != "12:15" || slots[1].Available {
		t.Errorf("second slot: %+v", slots[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDaySlotsEmpty(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT slot_time, available").WithArgs("2026-10-21").
		WillReturnRows(pgxmock.NewRows([]string{"slot_time", "available"}))

	_, found, err := New(mock).DaySlots(context.Background(), day)
	if err != nil {
		t.Fatalf("day slots: %v", err)
	}
	if found {
		t.Error("expected found=false for unconfigured day")
	}
}

func TestDaySlotsQueryError(t *testing.T) {
	mock := newMock(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT slot_time, available").WithArgs("2026-10-21").WillReturnError(boom)

	if _, _, err := New(mock).DaySlots(context.Background(), day); !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestSetSlot(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO availability_slots").
		WithArgs("2026-10-21", "14:00", false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := New(mock).SetSlot(context.Background(), day, "14:00", false); err != nil {
		t.Fatalf("set slot: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSetSlotRejectsBadTime(t *testing.T) {
	mock := newMock(t)
	if err := New(mock).SetSlot(context.Background(), day, "2pm", true); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestClearDay(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM availability_slots").WithArgs("2026-10-21").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := New(mock).ClearDay(context.Background(), day)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows, got %d", n)
	}
}
