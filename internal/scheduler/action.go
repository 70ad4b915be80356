package scheduler

import (
	"cloud.google.com/go/civil"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/model"
)

// Op names one user action on the wizard.
type Op string

const (
	OpSelectEvent Op = "select_event"
	OpSetView     Op = "set_view"
	OpPrev        Op = "prev"
	OpNext        Op = "next"
	OpSelectDate  Op = "select_date"
	OpClearDate   Op = "clear_date"
	OpSelectTime  Op = "select_time"
	OpSelectSlot  Op = "select_slot"
	OpSetField    Op = "set_field"
	OpSubmit      Op = "submit"
	OpBack        Op = "back"
	OpBackToStart Op = "back_to_start"
)

// Action carries the arguments of an Op. Only the fields the Op reads are set.
type Action struct {
	Op       Op
	Event    string
	Duration string
	View     model.CalendarView
	Date     civil.Date
	Time     string
	Field    booking.Field
	Value    string
	// Form, when set on a submit, replaces the form values before validation.
	Form *model.BookingFormData
}
