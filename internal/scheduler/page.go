package scheduler

import (
	"context"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/model"
	"booking-wizard/internal/session"
	"booking-wizard/internal/wizard"
)

// Page is everything needed to render the current step of a session.
type Page struct {
	SessionID string
	Step      wizard.StepKind
	View      model.CalendarView
	Today     civil.Date

	Event       *model.SelectedEvent
	PendingDate *civil.Date
	Slot        *model.Slot
	// EndTime is the slot start plus the event duration, "HH:MM".
	EndTime string

	// Grid is set on the calendar step; Times once a monthly date is picked.
	Grid  *calendar.Grid
	Times []model.TimeSlot

	Form      booking.Form
	Confirmed *model.BookingFormData
	// Summary is the invite title on the confirmation step.
	Summary string
}

func (s *Service) page(ctx context.Context, sess *session.Session) (*Page, error) {
	ctl, err := wizard.Restore(s.catalog, sess.Wizard)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	p := &Page{
		SessionID: sess.ID,
		Step:      ctl.Step().Kind(),
		View:      ctl.View(),
		Today:     today,
		Form:      sess.Form,
	}
	if ev, ok := wizard.EventOf(ctl.Step()); ok {
		p.Event = &ev
	}
	if slot, ok := wizard.SlotOf(ctl.Step()); ok {
		p.Slot = &slot
		p.EndTime = endTime(slot, p.Event)
	}

	switch st := ctl.Step().(type) {
	case wizard.Calendar:
		v, err := s.view(sess, ctl.View(), today)
		if err != nil {
			return nil, err
		}
		var sel *model.Slot
		if st.PendingDate != nil {
			d := *st.PendingDate
			p.PendingDate = &d
			sel = &model.Slot{Date: d}
			if p.Times, err = calendar.DayTimes(ctx, s.sources.Weekly, today, d); err != nil {
				return nil, err
			}
		}
		g, err := v.Grid(ctx, today, sel)
		if err != nil {
			return nil, err
		}
		p.Grid = &g
	case wizard.Confirmation:
		form := st.Form
		p.Confirmed = &form
		p.Summary = s.meeting(st).Summary()
	}
	return p, nil
}

func endTime(slot model.Slot, ev *model.SelectedEvent) string {
	start, err := model.ParseClock(slot.Time)
	if err != nil || ev == nil {
		return ""
	}
	return start.Add(ev.Length()).String()
}
