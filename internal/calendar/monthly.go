package calendar

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/availability"
	"booking-wizard/internal/model"
)

// Monthly shows one month, Monday first. Availability is per day; no time is picked here.
type Monthly struct {
	month civil.Date
	src   availability.Source
}

func (m *Monthly) Kind() model.CalendarView { return model.ViewMonthly }
func (m *Monthly) State() State             { return State{Kind: model.ViewMonthly, Anchor: m.month} }
func (m *Monthly) Prev()                    { m.month = AddMonths(m.month, -1) }
func (m *Monthly) Next()                    { m.month = AddMonths(m.month, 1) }

func (m *Monthly) Window() (civil.Date, civil.Date) {
	return m.month, AddMonths(m.month, 1).AddDays(-1)
}

func (m *Monthly) Title() string { return m.month.In(time.UTC).Format("January 2006") }

// Grid pads the month to whole Monday..Sunday weeks. Padding cells are never selectable.
func (m *Monthly) Grid(ctx context.Context, today civil.Date, sel *model.Slot) (Grid, error) {
	first, last := m.Window()
	g := Grid{View: model.ViewMonthly, Title: m.Title()}

	gridStart := StartOfWeek(first)
	gridEnd := StartOfWeek(last).AddDays(6)
	g.Days = DaysBetween(gridStart, gridStart.AddDays(6))

	var row []Cell
	for _, d := range DaysBetween(gridStart, gridEnd) {
		c := Cell{
			Date:     d,
			InWindow: SameMonth(d, m.month),
			Selected: sel != nil && sel.Date == d,
			Today:    d == today,
		}
		if c.InWindow {
			ok, err := availability.Predicate(ctx, m.src, today, d, "")
			if err != nil {
				return Grid{}, err
			}
			c.Selectable = ok
		}
		row = append(row, c)
		if len(row) == 7 {
			g.Rows = append(g.Rows, row)
			row = nil
		}
	}
	return g, nil
}

// Pick accepts a date of the displayed month. The returned slot has no time.
func (m *Monthly) Pick(ctx context.Context, today, date civil.Date, _ string) (model.Slot, error) {
	if !SameMonth(date, m.month) {
		return model.Slot{}, ErrOutsideWindow
	}
	ok, err := availability.Predicate(ctx, m.src, today, date, "")
	if err != nil {
		return model.Slot{}, err
	}
	if !ok {
		return model.Slot{}, ErrUnavailable
	}
	return model.Slot{Date: date}, nil
}

// DayTimes lists the times offered after a date-only pick on the monthly layout, using
// the weekly slot list and the given source.
func DayTimes(ctx context.Context, src availability.Source, today, date civil.Date) ([]model.TimeSlot, error) {
	var out []model.TimeSlot
	for _, tm := range WeeklyTimes() {
		ok, err := availability.Predicate(ctx, src, today, date, tm)
		if err != nil {
			return nil, err
		}
		out = append(out, model.TimeSlot{Time: tm, Available: ok})
	}
	return out, nil
}
