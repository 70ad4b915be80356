package calendar

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/availability"
	"booking-wizard/internal/model"
)

const columnDays = 5

// ColumnTimes is 12:15 through 16:45 every 15 minutes.
func ColumnTimes() []string {
	return slotRange(model.Clock{Hour: 12, Minute: 15}, model.Clock{Hour: 16, Minute: 45}, 15*time.Minute)
}

// Column shows five consecutive days starting at its anchor, not aligned to weeks.
type Column struct {
	start civil.Date
	src   availability.Source
}

func (c *Column) Kind() model.CalendarView { return model.ViewColumn }
func (c *Column) State() State             { return State{Kind: model.ViewColumn, Anchor: c.start} }
func (c *Column) Prev()                    { c.start = c.start.AddDays(-columnDays) }
func (c *Column) Next()                    { c.start = c.start.AddDays(columnDays) }

func (c *Column) Window() (civil.Date, civil.Date) {
	return c.start, c.start.AddDays(columnDays - 1)
}

func (c *Column) Title() string { return rangeTitle(c.Window()) }

func (c *Column) Grid(ctx context.Context, today civil.Date, sel *model.Slot) (Grid, error) {
	start, end := c.Window()
	return slotGrid(ctx, c.src, model.ViewColumn, c.Title(), DaysBetween(start, end), ColumnTimes(), today, sel)
}

func (c *Column) Pick(ctx context.Context, today, date civil.Date, slot string) (model.Slot, error) {
	start, end := c.Window()
	return pickSlot(ctx, c.src, start, end, today, date, ColumnTimes(), slot)
}
