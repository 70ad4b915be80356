package wizard

import (
	"fmt"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/catalog"
	"booking-wizard/internal/model"
)

// Snapshot is the flat, serialisable form of a controller.
type Snapshot struct {
	Step        StepKind               `json:"step"`
	View        model.CalendarView     `json:"view"`
	Event       *model.SelectedEvent   `json:"event,omitempty"`
	PendingDate *civil.Date            `json:"pending_date,omitempty"`
	Slot        *model.Slot            `json:"slot,omitempty"`
	Form        *model.BookingFormData `json:"form,omitempty"`
}

func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{Step: c.step.Kind(), View: c.view}
	switch st := c.step.(type) {
	case Calendar:
		s.Event = &st.Event
		if st.PendingDate != nil {
			d := *st.PendingDate
			s.PendingDate = &d
		}
	case Booking:
		s.Event, s.Slot = &st.Event, &st.Slot
	case Confirmation:
		s.Event, s.Slot, s.Form = &st.Event, &st.Slot, &st.Form
	}
	return s
}

// Restore rebuilds a controller, refusing snapshots that break the step preconditions.
func Restore(c *catalog.Catalog, s Snapshot) (*Controller, error) {
	if !s.View.Valid() {
		return nil, fmt.Errorf("%w: view %q", ErrCorruptState, s.View)
	}
	ctl := &Controller{catalog: c, view: s.View}

	need := func(event, slot, form bool) error {
		if (s.Event != nil) != event || (s.Slot != nil) != slot || (s.Form != nil) != form {
			return fmt.Errorf("%w: fields do not match step %q", ErrCorruptState, s.Step)
		}
		if s.PendingDate != nil && s.Step != StepCalendar {
			return fmt.Errorf("%w: pending date outside calendar step", ErrCorruptState)
		}
		if s.Slot != nil {
			if err := checkSlot(*s.Slot); err != nil {
				return fmt.Errorf("%w: %v", ErrCorruptState, err)
			}
		}
		return nil
	}

	switch s.Step {
	case StepEvents:
		if err := need(false, false, false); err != nil {
			return nil, err
		}
		ctl.step = Events{}
	case StepCalendar:
		if err := need(true, false, false); err != nil {
			return nil, err
		}
		cal := Calendar{Event: *s.Event}
		if s.PendingDate != nil {
			if s.View != model.ViewMonthly || !s.PendingDate.IsValid() {
				return nil, fmt.Errorf("%w: pending date %s on %s view", ErrCorruptState, s.PendingDate, s.View)
			}
			d := *s.PendingDate
			cal.PendingDate = &d
		}
		ctl.step = cal
	case StepBooking:
		if err := need(true, true, false); err != nil {
			return nil, err
		}
		ctl.step = Booking{Event: *s.Event, Slot: *s.Slot}
	case StepConfirmation:
		if err := need(true, true, true); err != nil {
			return nil, err
		}
		ctl.step = Confirmation{Event: *s.Event, Slot: *s.Slot, Form: *s.Form}
	default:
		return nil, fmt.Errorf("%w: step %q", ErrCorruptState, s.Step)
	}
	return ctl, nil
}
