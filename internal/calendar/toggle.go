package calendar

import (
	"fmt"

	"booking-wizard/internal/model"
)

// Option is one button of the view toggle.
type Option struct {
	Key    model.CalendarView
	Label  string
	Active bool
}

var toggle = []Option{
	{Key: model.ViewMonthly, Label: "Month"},
	{Key: model.ViewWeekly, Label: "Week"},
	{Key: model.ViewColumn, Label: "Column"},
}

// Options lists the toggle buttons with current marked active.
func Options(current model.CalendarView) []Option {
	out := make([]Option, len(toggle))
	for i, o := range toggle {
		o.Active = o.Key == current
		out[i] = o
	}
	return out
}

// ParseView maps a toggle key to a view kind.
func ParseView(key string) (model.CalendarView, error) {
	v := model.CalendarView(key)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, key)
	}
	return v, nil
}
