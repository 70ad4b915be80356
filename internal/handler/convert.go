package handler

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "booking-wizard/api/scheduling/v1"
	"booking-wizard/internal/booking"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/catalog"
	"booking-wizard/internal/model"
	"booking-wizard/internal/scheduler"
	"booking-wizard/internal/session"
	"booking-wizard/internal/wizard"
)

// grpcError maps domain errors onto status codes. Anything unexpected stays opaque.
func grpcError(err error) error {
	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, session.ErrNotFound):
		return status.Error(codes.NotFound, "session not found")
	case errors.Is(err, wizard.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, calendar.ErrUnavailable):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, calendar.ErrOutsideWindow),
		errors.Is(err, calendar.ErrUnknownSlot),
		errors.Is(err, calendar.ErrUnknownView),
		errors.Is(err, catalog.ErrUnknownEvent),
		errors.Is(err, wizard.ErrUnknownDuration),
		errors.Is(err, scheduler.ErrUnknownOp):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

func toAction(req *pb.ApplyRequest) (scheduler.Action, error) {
	a := scheduler.Action{
		Op:       scheduler.Op(req.Op),
		Event:    req.Event,
		Duration: req.Duration,
		View:     model.CalendarView(req.View),
		Time:     req.Time,
		Value:    req.Value,
	}
	if req.Date != "" {
		d, err := civil.ParseDate(req.Date)
		if err != nil {
			return a, fmt.Errorf("bad date %q", req.Date)
		}
		a.Date = d
	}
	if req.Field != "" {
		f, err := booking.ParseField(req.Field)
		if err != nil {
			return a, err
		}
		a.Field = f
	}
	if req.WithForm {
		a.Form = &model.BookingFormData{Name: req.Name, Email: req.Email, Phone: req.Phone, Notes: req.Notes}
	}
	return a, nil
}

func toState(p *scheduler.Page) *pb.State {
	st := &pb.State{
		Step:    string(p.Step),
		View:    string(p.View),
		EndTime: p.EndTime,
		Name:    p.Form.Data.Name,
		Email:   p.Form.Data.Email,
		Phone:   p.Form.Data.Phone,
		Notes:   p.Form.Data.Notes,
		Summary: p.Summary,
		Today:   p.Today.String(),
	}
	if p.Event != nil {
		st.EventTitle = p.Event.Title
		st.EventDuration = p.Event.Duration
	}
	if p.PendingDate != nil {
		st.PendingDate = p.PendingDate.String()
	}
	if p.Slot != nil {
		st.SlotDate = p.Slot.Date.String()
		st.SlotTime = p.Slot.Time
	}
	if p.Confirmed != nil {
		st.Name, st.Email, st.Phone, st.Notes = p.Confirmed.Name, p.Confirmed.Email, p.Confirmed.Phone, p.Confirmed.Notes
	}
	for _, f := range p.Form.Errors.Fields() {
		st.FieldErrors = append(st.FieldErrors, &pb.FieldError{Field: string(f), Message: p.Form.Errors[f]})
	}
	return st
}

func toSlots(p *scheduler.Page) *pb.ListSlotsResponse {
	resp := &pb.ListSlotsResponse{Title: p.Grid.Title, View: string(p.Grid.View)}
	for _, row := range p.Grid.Rows {
		for _, c := range row {
			cell := &pb.Cell{
				Date:       c.Date.String(),
				Time:       c.Time,
				InWindow:   c.InWindow,
				Selectable: c.Selectable,
				Selected:   c.Selected,
				Today:      c.Today,
			}
			resp.Cells = append(resp.Cells, cell)
		}
	}
	for _, t := range p.Times {
		resp.Times = append(resp.Times, &pb.TimeSlot{Time: t.Time, Available: t.Available})
	}
	return resp
}
