package wizard

import (
	"errors"
	"fmt"
	"slices"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/catalog"
	"booking-wizard/internal/model"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownDuration   = errors.New("duration not offered for event")
	ErrCorruptState      = errors.New("corrupt wizard state")
)

// Controller owns the current step and the calendar layout. It is not safe for concurrent use;
// one controller belongs to one session.
type Controller struct {
	catalog *catalog.Catalog
	step    Step
	view    model.CalendarView
}

// New returns a controller in its initial state: events step, monthly layout.
func New(c *catalog.Catalog) *Controller {
	return &Controller{catalog: c, step: Events{}, view: model.ViewMonthly}
}

func (c *Controller) Step() Step               { return c.step }
func (c *Controller) View() model.CalendarView { return c.view }

func transitionErr(op string, from Step) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, from.Kind())
}

// SelectEvent snapshots the event and opens the calendar. An empty duration picks the
// event's first one.
func (c *Controller) SelectEvent(title, duration string) error {
	if _, ok := c.step.(Events); !ok {
		return transitionErr("select event", c.step)
	}
	ev, err := c.catalog.Lookup(title)
	if err != nil {
		return fmt.Errorf("select event %q: %w", title, err)
	}
	switch {
	case duration == "" && len(ev.Durations) > 0:
		duration = ev.Durations[0]
	case duration != "" && !slices.Contains(ev.Durations, duration):
		return fmt.Errorf("%w: %q for %q", ErrUnknownDuration, duration, title)
	}
	c.step = Calendar{Event: model.SelectedEvent{
		Title:       ev.Title,
		Description: ev.Description,
		Duration:    duration,
	}}
	return nil
}

// SetView switches the calendar layout and drops a pending monthly date.
func (c *Controller) SetView(v model.CalendarView) error {
	cal, ok := c.step.(Calendar)
	if !ok {
		return transitionErr("set view", c.step)
	}
	if !v.Valid() {
		return fmt.Errorf("set view %q: %w", v, ErrInvalidTransition)
	}
	c.view = v
	cal.PendingDate = nil
	c.step = cal
	return nil
}

// SelectDate records a monthly date pick. The slot is completed by SelectTime.
func (c *Controller) SelectDate(d civil.Date) error {
	cal, ok := c.step.(Calendar)
	if !ok || c.view != model.ViewMonthly {
		return transitionErr("select date", c.step)
	}
	if !d.IsValid() {
		return fmt.Errorf("select date %s: %w", d, ErrInvalidTransition)
	}
	cal.PendingDate = &d
	c.step = cal
	return nil
}

// ClearDate leaves the time sub-step and shows the month again.
func (c *Controller) ClearDate() error {
	cal, ok := c.step.(Calendar)
	if !ok || cal.PendingDate == nil {
		return transitionErr("clear date", c.step)
	}
	cal.PendingDate = nil
	c.step = cal
	return nil
}

// SelectTime completes a monthly pick and moves to booking.
func (c *Controller) SelectTime(tm string) error {
	cal, ok := c.step.(Calendar)
	if !ok || cal.PendingDate == nil {
		return transitionErr("select time", c.step)
	}
	if _, err := model.ParseClock(tm); err != nil {
		return fmt.Errorf("select time: %w", err)
	}
	c.step = Booking{Event: cal.Event, Slot: model.Slot{Date: *cal.PendingDate, Time: tm}}
	return nil
}

// SelectSlot sets date and time together, as the weekly and column layouts do.
func (c *Controller) SelectSlot(s model.Slot) error {
	cal, ok := c.step.(Calendar)
	if !ok || c.view == model.ViewMonthly {
		return transitionErr("select slot", c.step)
	}
	if err := checkSlot(s); err != nil {
		return fmt.Errorf("select slot: %w", err)
	}
	c.step = Booking{Event: cal.Event, Slot: s}
	return nil
}

// Submit validates the form and freezes it on the confirmation step. A rejected form leaves
// the state untouched and returns a *booking.ValidationError.
func (c *Controller) Submit(data model.BookingFormData) error {
	b, ok := c.step.(Booking)
	if !ok {
		return transitionErr("submit", c.step)
	}
	if errs := booking.Validate(data); errs != nil {
		return &booking.ValidationError{Fields: errs}
	}
	c.step = Confirmation{Event: b.Event, Slot: b.Slot, Form: data}
	return nil
}

// Back steps from calendar to events or from booking to calendar.
func (c *Controller) Back() error {
	switch st := c.step.(type) {
	case Calendar:
		c.step = Events{}
	case Booking:
		c.step = Calendar{Event: st.Event}
	default:
		return transitionErr("back", c.step)
	}
	return nil
}

// BackToStart leaves the confirmation and restores the initial state.
func (c *Controller) BackToStart() error {
	if _, ok := c.step.(Confirmation); !ok {
		return transitionErr("back to start", c.step)
	}
	c.step = Events{}
	c.view = model.ViewMonthly
	return nil
}

func checkSlot(s model.Slot) error {
	if !s.Date.IsValid() {
		return fmt.Errorf("invalid date %s", s.Date)
	}
	_, err := model.ParseClock(s.Time)
	return err
}
