// Package wizard is the scheduling state machine: events → calendar → booking → confirmation.
//
// Each step is its own type and carries exactly the data that is valid at that step, so a
// booking step without a slot, or a confirmation without a form, cannot be built. Going back
// returns to the previous step type and therefore drops whatever the later step introduced.
package wizard

import (
	"cloud.google.com/go/civil"

	"booking-wizard/internal/model"
)

type StepKind string

const (
	StepEvents       StepKind = "events"
	StepCalendar     StepKind = "calendar"
	StepBooking      StepKind = "booking"
	StepConfirmation StepKind = "confirmation"
)

// Step is one of Events, Calendar, Booking or Confirmation.
type Step interface {
	Kind() StepKind
	step()
}

// Events is the landing step; nothing is selected.
type Events struct{}

// Calendar holds the chosen event. PendingDate is set between a monthly date pick and the
// time pick that completes the slot.
type Calendar struct {
	Event       model.SelectedEvent
	PendingDate *civil.Date
}

// Booking holds a complete slot waiting for the contact form.
type Booking struct {
	Event model.SelectedEvent
	Slot  model.Slot
}

// Confirmation is terminal until BackToStart. Form is frozen.
type Confirmation struct {
	Event model.SelectedEvent
	Slot  model.Slot
	Form  model.BookingFormData
}

func (Events) Kind() StepKind       { return StepEvents }
func (Calendar) Kind() StepKind     { return StepCalendar }
func (Booking) Kind() StepKind      { return StepBooking }
func (Confirmation) Kind() StepKind { return StepConfirmation }

func (Events) step()       {}
func (Calendar) step()     {}
func (Booking) step()      {}
func (Confirmation) step() {}

// EventOf returns the selected event of any step past Events.
func EventOf(s Step) (model.SelectedEvent, bool) {
	switch st := s.(type) {
	case Calendar:
		return st.Event, true
	case Booking:
		return st.Event, true
	case Confirmation:
		return st.Event, true
	}
	return model.SelectedEvent{}, false
}

// SlotOf returns the selected slot of the booking and confirmation steps.
func SlotOf(s Step) (model.Slot, bool) {
	switch st := s.(type) {
	case Booking:
		return st.Slot, true
	case Confirmation:
		return st.Slot, true
	}
	return model.Slot{}, false
}
