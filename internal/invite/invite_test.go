package invite

import (
	"bytes"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-wizard/internal/catalog"
	"booking-wizard/internal/model"
)

func meeting(t *testing.T) Meeting {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return Meeting{
		Host:     catalog.Default().Profile(),
		Event:    model.SelectedEvent{Title: "Interviews", Duration: "60m"},
		Slot:     model.Slot{Date: civil.Date{Year: 2026, Month: time.October, Day: 26}, Time: "14:00"},
		Attendee: model.BookingFormData{Name: "Jane Doe", Email: "jane@x.com"},
		Location: loc,
		Domain:   "calid.com",
	}
}

func parse(t *testing.T, raw []byte) *ics.VEvent {
	t.Helper()
	cal, err := ics.ParseCalendar(bytes.NewReader(raw))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	return events[0]
}

func TestRender(t *testing.T) {
	now := time.Date(2026, time.October, 21, 9, 30, 0, 0, time.UTC)
	raw, err := Render(meeting(t), now)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "PRODID:-//Cal ID//Cal ID//EN")

	ev := parse(t, raw)
	assert.Equal(t, "1792575000000@calid.com", ev.Id())
	assert.Equal(t, "Interviews between Sanskar Yadav and Jane Doe",
		ev.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "No additional notes provided.",
		ev.GetProperty(ics.ComponentPropertyDescription).Value)
	assert.Equal(t, "Google Meet", ev.GetProperty(ics.ComponentPropertyLocation).Value)
	assert.Equal(t, "mailto:sanskar.yadav@onehash.ai", ev.GetProperty(ics.ComponentPropertyOrganizer).Value)

	attendees := ev.Attendees()
	require.Len(t, attendees, 1)
	assert.Equal(t, "jane@x.com", attendees[0].Email())

	// 14:00 IST is 08:30 UTC
	start, err := ev.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2026, time.October, 26, 8, 30, 0, 0, time.UTC)), "start %s", start)
	end, err := ev.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestRenderKeepsNotes(t *testing.T) {
	m := meeting(t)
	m.Attendee.Notes = "Bring the portfolio"
	raw, err := Render(m, time.Now())
	require.NoError(t, err)
	ev := parse(t, raw)
	assert.Equal(t, m.Attendee.Notes, ev.GetProperty(ics.ComponentPropertyDescription).Value)

	m.Attendee.Notes = "Agenda; intro"
	raw, err = Render(m, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `Agenda\; intro`)
}

func TestWindowDefaults(t *testing.T) {
	m := meeting(t)
	m.Location = nil
	m.Event.Duration = ""
	start, end, err := m.Window()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, start.Location())
	assert.Equal(t, 14, start.Hour())
	assert.Equal(t, 30*time.Minute, end.Sub(start))
}

func TestBuildIncomplete(t *testing.T) {
	m := meeting(t)
	m.Attendee.Email = " "
	_, err := Build(m, time.Now())
	assert.ErrorIs(t, err, ErrIncomplete)

	m = meeting(t)
	m.Slot.Time = "2pm"
	_, err = Build(m, time.Now())
	assert.Error(t, err)
}
