package wizard

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/catalog"
	"booking-wizard/internal/model"
)

func date(m time.Month, d int) civil.Date { return civil.Date{Year: 2026, Month: m, Day: d} }

func newController() *Controller { return New(catalog.Default()) }

func TestInitialState(t *testing.T) {
	c := newController()
	assert.Equal(t, Events{}, c.Step())
	assert.Equal(t, model.ViewMonthly, c.View())
}

func TestSelectEventDuration(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		duration string
		want     string
		err      error
	}{
		{"default first", "Interviews", "", "30m", nil},
		{"explicit", "Product Hunt Chats", "45m", "45m", nil},
		{"not offered", "Interviews", "15m", "", ErrUnknownDuration},
		{"unknown event", "Coffee", "", "", catalog.ErrUnknownEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			err := c.SelectEvent(tt.title, tt.duration)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Equal(t, Events{}, c.Step())
				return
			}
			require.NoError(t, err)
			cal, ok := c.Step().(Calendar)
			require.True(t, ok)
			assert.Equal(t, tt.title, cal.Event.Title)
			assert.Equal(t, tt.want, cal.Event.Duration)
			assert.Nil(t, cal.PendingDate)
		})
	}
}

// Interviews, weekly layout, next Monday 14:00, Jane Doe.
func TestWeeklyHappyPath(t *testing.T) {
	c := newController()
	require.NoError(t, c.SelectEvent("Interviews", ""))
	require.NoError(t, c.SetView(model.ViewWeekly))

	slot := model.Slot{Date: date(time.October, 26), Time: "14:00"}
	require.NoError(t, c.SelectSlot(slot))

	b, ok := c.Step().(Booking)
	require.True(t, ok)
	assert.Equal(t, slot, b.Slot)

	form := model.BookingFormData{Name: "Jane Doe", Email: "jane@x.com"}
	require.NoError(t, c.Submit(form))

	conf, ok := c.Step().(Confirmation)
	require.True(t, ok)
	assert.Equal(t, "Interviews", conf.Event.Title)
	assert.Equal(t, "30m", conf.Event.Duration)
	assert.Equal(t, slot, conf.Slot)
	assert.Equal(t, form, conf.Form)
}

func TestMonthlyTimeSubStep(t *testing.T) {
	c := newController()
	require.NoError(t, c.SelectEvent("Product Demo", "45m"))

	// a time without a date is refused
	assert.ErrorIs(t, c.SelectTime("13:00"), ErrInvalidTransition)
	// slot picks belong to the weekly and column layouts
	assert.ErrorIs(t, c.SelectSlot(model.Slot{Date: date(time.October, 22), Time: "13:00"}), ErrInvalidTransition)

	require.NoError(t, c.SelectDate(date(time.October, 22)))
	cal := c.Step().(Calendar)
	require.NotNil(t, cal.PendingDate)
	assert.Equal(t, date(time.October, 22), *cal.PendingDate)

	require.NoError(t, c.ClearDate())
	assert.Nil(t, c.Step().(Calendar).PendingDate)
	assert.ErrorIs(t, c.ClearDate(), ErrInvalidTransition)

	require.NoError(t, c.SelectDate(date(time.October, 23)))
	assert.Error(t, c.SelectTime("quarter past"))
	require.NoError(t, c.SelectTime("13:15"))
	assert.Equal(t, model.Slot{Date: date(time.October, 23), Time: "13:15"}, c.Step().(Booking).Slot)
}

func TestSetViewDropsPendingDate(t *testing.T) {
	c := newController()
	require.NoError(t, c.SelectEvent("Interviews", ""))
	require.NoError(t, c.SelectDate(date(time.October, 22)))
	require.NoError(t, c.SetView(model.ViewColumn))

	assert.Nil(t, c.Step().(Calendar).PendingDate)
	assert.Equal(t, model.ViewColumn, c.View())
	assert.ErrorIs(t, c.SelectDate(date(time.October, 22)), ErrInvalidTransition)
	assert.ErrorIs(t, c.SetView("yearly"), ErrInvalidTransition)
}

func TestFormErrorsBlockSubmit(t *testing.T) {
	c := newController()
	require.NoError(t, c.SelectEvent("Interviews", ""))
	require.NoError(t, c.SetView(model.ViewWeekly))
	require.NoError(t, c.SelectSlot(model.Slot{Date: date(time.October, 26), Time: "14:00"}))
	before := c.Snapshot()

	err := c.Submit(model.BookingFormData{Email: "not-an-email"})
	var ve *booking.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, booking.MsgNameRequired, ve.Fields[booking.FieldName])
	assert.Equal(t, booking.MsgEmailInvalid, ve.Fields[booking.FieldEmail])
	assert.Equal(t, before, c.Snapshot())

	err = c.Submit(model.BookingFormData{Name: "Jane Doe", Email: "not-an-email"})
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 1)

	require.NoError(t, c.Submit(model.BookingFormData{Name: "Jane Doe", Email: "jane@x.com"}))
	assert.Equal(t, StepConfirmation, c.Step().Kind())
}

func TestBackToStartEqualsInitial(t *testing.T) {
	c := newController()
	require.NoError(t, c.SelectEvent("Everything Else", "60m"))
	require.NoError(t, c.SetView(model.ViewColumn))
	require.NoError(t, c.SelectSlot(model.Slot{Date: date(time.October, 22), Time: "12:15"}))
	require.NoError(t, c.Submit(model.BookingFormData{Name: "A", Email: "a@b.c"}))

	require.NoError(t, c.BackToStart())
	assert.Equal(t, newController().Snapshot(), c.Snapshot())
}

// Picking a slot, going back and picking another carries only the second one.
func TestReselectionRoundTrip(t *testing.T) {
	c := newController()
	require.NoError(t, c.SelectEvent("Interviews", ""))
	require.NoError(t, c.SetView(model.ViewWeekly))

	first := model.Slot{Date: date(time.October, 26), Time: "14:00"}
	second := model.Slot{Date: date(time.October, 27), Time: "15:30"}
	require.NoError(t, c.SelectSlot(first))
	require.NoError(t, c.Back())

	cal, ok := c.Step().(Calendar)
	require.True(t, ok)
	assert.Equal(t, "Interviews", cal.Event.Title)
	assert.Equal(t, model.ViewWeekly, c.View())

	require.NoError(t, c.SelectSlot(second))
	require.NoError(t, c.Submit(model.BookingFormData{Name: "Jane", Email: "jane@x.com"}))
	assert.Equal(t, second, c.Step().(Confirmation).Slot)
}

func TestBackTearsDownLaterState(t *testing.T) {
	c := newController()
	require.NoError(t, c.SelectEvent("Interviews", "60m"))
	require.NoError(t, c.SelectDate(date(time.October, 22)))
	require.NoError(t, c.SelectTime("12:30"))

	require.NoError(t, c.Back())
	cal, ok := c.Step().(Calendar)
	require.True(t, ok)
	assert.Equal(t, "60m", cal.Event.Duration)
	assert.Nil(t, cal.PendingDate)

	require.NoError(t, c.SelectDate(date(time.October, 22)))
	require.NoError(t, c.Back())
	assert.Equal(t, Events{}, c.Step())
	_, ok = EventOf(c.Step())
	assert.False(t, ok)
}

func TestInvalidTransitionsLeaveStateAlone(t *testing.T) {
	c := newController()
	initial := c.Snapshot()

	ops := map[string]func() error{
		"back":          c.Back,
		"back to start": c.BackToStart,
		"set view":      func() error { return c.SetView(model.ViewWeekly) },
		"select date":   func() error { return c.SelectDate(date(time.October, 22)) },
		"select slot":   func() error { return c.SelectSlot(model.Slot{Date: date(time.October, 22), Time: "12:00"}) },
		"submit":        func() error { return c.Submit(model.BookingFormData{Name: "A", Email: "a@b.c"}) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(), ErrInvalidTransition)
			assert.Equal(t, initial, c.Snapshot())
		})
	}

	require.NoError(t, c.SelectEvent("Interviews", ""))
	assert.ErrorIs(t, c.SelectEvent("Product Demo", ""), ErrInvalidTransition)
	assert.ErrorIs(t, c.BackToStart(), ErrInvalidTransition)
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newController()
	require.NoError(t, c.SelectEvent("Interviews", ""))
	require.NoError(t, c.SelectDate(date(time.November, 2)))

	raw, err := json.Marshal(c.Snapshot())
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))

	got, err := Restore(catalog.Default(), snap)
	require.NoError(t, err)
	assert.Equal(t, c.Snapshot(), got.Snapshot())

	require.NoError(t, got.SelectTime("16:00"))
	slot, ok := SlotOf(got.Step())
	require.True(t, ok)
	assert.Equal(t, "2026-11-02 16:00", slot.String())
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	ev := &model.SelectedEvent{Title: "Interviews", Duration: "30m"}
	slot := &model.Slot{Date: date(time.October, 26), Time: "14:00"}
	d := date(time.October, 26)
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"unknown step", Snapshot{Step: "payment", View: model.ViewMonthly}},
		{"bad view", Snapshot{Step: StepEvents, View: "yearly"}},
		{"calendar without event", Snapshot{Step: StepCalendar, View: model.ViewMonthly}},
		{"events with event", Snapshot{Step: StepEvents, View: model.ViewMonthly, Event: ev}},
		{"booking without slot", Snapshot{Step: StepBooking, View: model.ViewWeekly, Event: ev}},
		{"booking with bad time", Snapshot{Step: StepBooking, View: model.ViewWeekly, Event: ev,
			Slot: &model.Slot{Date: d, Time: "2pm"}}},
		{"confirmation without form", Snapshot{Step: StepConfirmation, View: model.ViewWeekly, Event: ev, Slot: slot}},
		{"pending date on weekly", Snapshot{Step: StepCalendar, View: model.ViewWeekly, Event: ev, PendingDate: &d}},
		{"pending date on booking", Snapshot{Step: StepBooking, View: model.ViewMonthly, Event: ev, Slot: slot, PendingDate: &d}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Restore(catalog.Default(), tt.snap)
			assert.ErrorIs(t, err, ErrCorruptState)
		})
	}
}
