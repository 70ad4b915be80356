// Package calendar implements the three interchangeable calendar layouts of the calendar step.
//
// A View owns its visible window. It is opened at "today" every time the calendar step is
// (re)entered or the layout is switched, and moved only by Prev/Next. Grid renders the cells
// for the current window; Pick turns a click into a model.Slot and refuses anything the
// availability predicate rejects, so a disabled cell can never produce a selection.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/availability"
	"booking-wizard/internal/model"
)

var (
	ErrUnknownView   = errors.New("unknown calendar view")
	ErrOutsideWindow = errors.New("date outside visible window")
	ErrUnknownSlot   = errors.New("time is not an offered slot")
	ErrUnavailable   = errors.New("slot is not available")
)

// Cell is one square of a grid.
type Cell struct {
	Date       civil.Date
	Time       string
	InWindow   bool
	Selectable bool
	Selected   bool
	Today      bool
}

// Grid is what a view renders. Rows are weeks×weekdays for the monthly layout and
// times×days for the weekly and column layouts.
type Grid struct {
	View  model.CalendarView
	Title string
	Days  []civil.Date
	Times []string
	Rows  [][]Cell
}

// Columns transposes a times×days grid into days×times for the per-day column layout.
func (g Grid) Columns() [][]Cell {
	if len(g.Rows) == 0 {
		return nil
	}
	out := make([][]Cell, len(g.Rows[0]))
	for _, row := range g.Rows {
		for i, c := range row {
			out[i] = append(out[i], c)
		}
	}
	return out
}

// View is the contract shared by the monthly, weekly and column layouts.
type View interface {
	Kind() model.CalendarView
	State() State
	Prev()
	Next()
	Window() (start, end civil.Date)
	Title() string
	Grid(ctx context.Context, today civil.Date, sel *model.Slot) (Grid, error)
	Pick(ctx context.Context, today, date civil.Date, slot string) (model.Slot, error)
}

// State is the persisted form of a view: its layout and window anchor.
type State struct {
	Kind   model.CalendarView `json:"kind"`
	Anchor civil.Date         `json:"anchor"`
}

// Sources supplies each layout with its availability.
type Sources struct {
	Monthly availability.Source
	Weekly  availability.Source
	Column  availability.Source
}

// DefaultSources mirrors the stand-in data: open months, an empty weekly map and the
// placeholder column feed.
func DefaultSources(seed uint64, ratio float64) Sources {
	return Sources{
		Monthly: availability.Always{},
		Weekly:  availability.NewSlots(nil),
		Column:  availability.Placeholder{Seed: seed, Ratio: ratio},
	}
}

// Open creates a view of the given kind positioned on today.
func Open(kind model.CalendarView, today civil.Date, src Sources) (View, error) {
	return Restore(State{Kind: kind, Anchor: today}, src)
}

// Restore rebuilds a view from its persisted state.
func Restore(st State, src Sources) (View, error) {
	switch st.Kind {
	case model.ViewMonthly:
		return &Monthly{month: StartOfMonth(st.Anchor), src: src.Monthly}, nil
	case model.ViewWeekly:
		return &Weekly{anchor: st.Anchor, src: src.Weekly}, nil
	case model.ViewColumn:
		return &Column{start: st.Anchor, src: src.Column}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, st.Kind)
}

// slotGrid renders the shared times×days layout of the weekly and column views.
func slotGrid(ctx context.Context, src availability.Source, kind model.CalendarView, title string,
	days []civil.Date, times []string, today civil.Date, sel *model.Slot) (Grid, error) {
	g := Grid{View: kind, Title: title, Days: days, Times: times}
	for _, tm := range times {
		row := make([]Cell, 0, len(days))
		for _, d := range days {
			ok, err := availability.Predicate(ctx, src, today, d, tm)
			if err != nil {
				return Grid{}, err
			}
			row = append(row, Cell{
				Date:       d,
				Time:       tm,
				InWindow:   true,
				Selectable: ok,
				Selected:   sel != nil && sel.Date == d && sel.Time == tm,
				Today:      d == today,
			})
		}
		g.Rows = append(g.Rows, row)
	}
	return g, nil
}

// pickSlot validates a date+time click against the window, the slot list and availability.
func pickSlot(ctx context.Context, src availability.Source, start, end, today, date civil.Date,
	times []string, slot string) (model.Slot, error) {
	if date.Before(start) || date.After(end) {
		return model.Slot{}, ErrOutsideWindow
	}
	if !slices.Contains(times, slot) {
		return model.Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	ok, err := availability.Predicate(ctx, src, today, date, slot)
	if err != nil {
		return model.Slot{}, err
	}
	if !ok {
		return model.Slot{}, ErrUnavailable
	}
	return model.Slot{Date: date, Time: slot}, nil
}
