package web

import (
	"errors"
	"net/http"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/catalog"
	"booking-wizard/internal/invite"
	"booking-wizard/internal/model"
	"booking-wizard/internal/scheduler"
	"booking-wizard/internal/session"
	"booking-wizard/internal/wizard"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.Get(r.Context(), sessionID(r))
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, page, "")
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	data, err := s.svc.Invite(r.Context(), sessionID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", invite.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+invite.Filename+`"`)
	w.Write(data)
}

// action handles the POSTs that take no form values.
func (s *Server) action(op scheduler.Op) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.apply(w, r, scheduler.Action{Op: op})
	}
}

func (s *Server) handleSelectEvent(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, scheduler.Action{
		Op:       scheduler.OpSelectEvent,
		Event:    r.FormValue("event"),
		Duration: r.FormValue("duration"),
	})
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	v, err := calendar.ParseView(r.FormValue("view"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.apply(w, r, scheduler.Action{Op: scheduler.OpSetView, View: v})
}

func (s *Server) handleSelectDate(w http.ResponseWriter, r *http.Request) {
	d, err := civil.ParseDate(r.FormValue("date"))
	if err != nil {
		s.badRequest(w, r, "Pick a date from the calendar.")
		return
	}
	s.apply(w, r, scheduler.Action{Op: scheduler.OpSelectDate, Date: d})
}

func (s *Server) handleSelectTime(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, scheduler.Action{Op: scheduler.OpSelectTime, Time: r.FormValue("time")})
}

func (s *Server) handleSelectSlot(w http.ResponseWriter, r *http.Request) {
	d, err := civil.ParseDate(r.FormValue("date"))
	if err != nil {
		s.badRequest(w, r, "Pick a slot from the calendar.")
		return
	}
	s.apply(w, r, scheduler.Action{Op: scheduler.OpSelectSlot, Date: d, Time: r.FormValue("time")})
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	f, err := booking.ParseField(r.FormValue("field"))
	if err != nil {
		s.badRequest(w, r, "Unknown form field.")
		return
	}
	s.apply(w, r, scheduler.Action{Op: scheduler.OpSetField, Field: f, Value: r.FormValue("value")})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, scheduler.Action{
		Op: scheduler.OpSubmit,
		Form: &model.BookingFormData{
			Name:  r.FormValue("name"),
			Email: r.FormValue("email"),
			Phone: r.FormValue("phone"),
			Notes: r.FormValue("notes"),
		},
	})
}

// apply runs the action and redirects to the page. A rejected form redirects too: its errors
// live on the session and render with the booking step.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, a scheduler.Action) {
	_, err := s.svc.Apply(r.Context(), sessionID(r), a)
	var verr *booking.ValidationError
	if err != nil && !errors.As(err, &verr) {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// fail re-renders the current step with a message and the status the error maps to.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := httpError(err)
	if code == http.StatusInternalServerError {
		s.internalError(w, err)
		return
	}
	page, gerr := s.svc.Get(r.Context(), sessionID(r))
	if gerr != nil {
		http.Error(w, msg, code)
		return
	}
	s.render(w, r, code, page, msg)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	page, err := s.svc.Get(r.Context(), sessionID(r))
	if err != nil {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	s.render(w, r, http.StatusBadRequest, page, msg)
}

func httpError(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "Your session has expired."
	case errors.Is(err, wizard.ErrInvalidTransition):
		return http.StatusConflict, "That action is not available on this step."
	case errors.Is(err, calendar.ErrUnavailable):
		return http.StatusUnprocessableEntity, "That time is not available."
	case errors.Is(err, calendar.ErrOutsideWindow),
		errors.Is(err, calendar.ErrUnknownSlot):
		return http.StatusUnprocessableEntity, "Pick a slot from the calendar."
	case errors.Is(err, calendar.ErrUnknownView),
		errors.Is(err, catalog.ErrUnknownEvent),
		errors.Is(err, wizard.ErrUnknownDuration),
		errors.Is(err, scheduler.ErrUnknownOp):
		return http.StatusBadRequest, "That choice is not offered."
	}
	return http.StatusInternalServerError, "internal server error"
}
