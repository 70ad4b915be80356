package calendar

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/availability"
	"booking-wizard/internal/model"
)

// WeeklyTimes is 12:00 through 17:00 every 15 minutes.
func WeeklyTimes() []string {
	return slotRange(model.Clock{Hour: 12}, model.Clock{Hour: 17}, 15*time.Minute)
}

// Weekly shows the Monday..Sunday week containing its anchor.
type Weekly struct {
	anchor civil.Date
	src    availability.Source
}

func (w *Weekly) Kind() model.CalendarView { return model.ViewWeekly }
func (w *Weekly) State() State             { return State{Kind: model.ViewWeekly, Anchor: w.anchor} }
func (w *Weekly) Prev()                    { w.anchor = w.anchor.AddDays(-7) }
func (w *Weekly) Next()                    { w.anchor = w.anchor.AddDays(7) }

func (w *Weekly) Window() (civil.Date, civil.Date) {
	start := StartOfWeek(w.anchor)
	return start, start.AddDays(6)
}

func (w *Weekly) Title() string { return rangeTitle(w.Window()) }

func (w *Weekly) Grid(ctx context.Context, today civil.Date, sel *model.Slot) (Grid, error) {
	start, end := w.Window()
	return slotGrid(ctx, w.src, model.ViewWeekly, w.Title(), DaysBetween(start, end), WeeklyTimes(), today, sel)
}

func (w *Weekly) Pick(ctx context.Context, today, date civil.Date, slot string) (model.Slot, error) {
	start, end := w.Window()
	return pickSlot(ctx, w.src, start, end, today, date, WeeklyTimes(), slot)
}
