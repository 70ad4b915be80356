// Package invite builds the downloadable iCalendar invite for a confirmed booking.
package invite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"booking-wizard/internal/model"
)

const (
	Filename    = "meeting.ics"
	ContentType = "text/calendar"

	productID       = "-//Cal ID//Cal ID//EN"
	defaultDomain   = "calid.com"
	defaultNotes    = "No additional notes provided."
	defaultDuration = 30 * time.Minute
)

var ErrIncomplete = errors.New("invite needs an event, a slot and an attendee")

// Meeting is everything the invite is rendered from.
type Meeting struct {
	Host     model.Profile
	Event    model.SelectedEvent
	Slot     model.Slot
	Attendee model.BookingFormData
	// Location is the host zone the slot is expressed in. Nil means UTC.
	Location *time.Location
	// Domain is the right-hand side of the UID.
	Domain string
}

// Summary is the one-line title used by the invite and the confirmation page.
func (m Meeting) Summary() string {
	return fmt.Sprintf("%s between %s and %s", m.Event.Title, m.Host.Name, m.Attendee.Name)
}

// Window returns the start and end of the meeting in the host zone.
func (m Meeting) Window() (time.Time, time.Time, error) {
	loc := m.Location
	if loc == nil {
		loc = time.UTC
	}
	start, err := m.Slot.Start(loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	d := m.Event.Length()
	if d <= 0 {
		d = defaultDuration
	}
	return start, start.Add(d), nil
}

// Build assembles the calendar. now stamps the UID, DTSTAMP and CREATED.
func Build(m Meeting, now time.Time) (*ics.Calendar, error) {
	if m.Event.Title == "" || m.Slot.Time == "" || strings.TrimSpace(m.Attendee.Email) == "" {
		return nil, ErrIncomplete
	}
	start, end, err := m.Window()
	if err != nil {
		return nil, fmt.Errorf("invite window: %w", err)
	}
	domain := m.Domain
	if domain == "" {
		domain = defaultDomain
	}
	notes := m.Attendee.Notes
	if strings.TrimSpace(notes) == "" {
		notes = defaultNotes
	}

	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodRequest)

	e := cal.AddEvent(fmt.Sprintf("%d@%s", now.UnixMilli(), domain))
	e.SetDtStampTime(now)
	e.SetCreatedTime(now)
	e.SetStartAt(start)
	e.SetEndAt(end)
	e.SetSummary(m.Summary())
	e.SetDescription(notes)
	e.SetLocation(m.Host.Location)
	e.SetOrganizer("mailto:"+m.Host.Email, ics.WithCN(m.Host.Name))
	e.AddAttendee(strings.TrimSpace(m.Attendee.Email),
		ics.CalendarUserTypeIndividual,
		ics.ParticipationStatusNeedsAction,
		ics.ParticipationRoleReqParticipant,
		ics.WithCN(m.Attendee.Name),
	)
	return cal, nil
}

// Render serialises the invite.
func Render(m Meeting, now time.Time) ([]byte, error) {
	cal, err := Build(m, now)
	if err != nil {
		return nil, err
	}
	return []byte(cal.Serialize()), nil
}
