// Package scheduler runs wizard actions against stored sessions. The web pages and the gRPC
// service are both thin adapters over it.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/catalog"
	"booking-wizard/internal/invite"
	"booking-wizard/internal/logging"
	"booking-wizard/internal/metrics"
	"booking-wizard/internal/model"
	"booking-wizard/internal/session"
	"booking-wizard/internal/wizard"
)

var ErrUnknownOp = errors.New("unknown operation")

type Options struct {
	Catalog       *catalog.Catalog
	Sources       calendar.Sources
	Sessions      session.Store
	Location      *time.Location
	TimezoneLabel string
	InviteDomain  string
	Now           func() time.Time
	Logger        *logging.Logger
	Metrics       *metrics.WizardMetrics
}

type Service struct {
	catalog  *catalog.Catalog
	sources  calendar.Sources
	sessions session.Store
	loc      *time.Location
	tzLabel  string
	domain   string
	now      func() time.Time
	log      *logging.Logger
	metrics  *metrics.WizardMetrics
}

func New(o Options) *Service {
	s := &Service{
		catalog:  o.Catalog,
		sources:  o.Sources,
		sessions: o.Sessions,
		loc:      o.Location,
		tzLabel:  o.TimezoneLabel,
		domain:   o.InviteDomain,
		now:      o.Now,
		log:      o.Logger,
		metrics:  o.Metrics,
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	return s
}

func (s *Service) Catalog() *catalog.Catalog { return s.catalog }
func (s *Service) TimezoneLabel() string     { return s.tzLabel }

// Today is the current date in the host zone.
func (s *Service) Today() civil.Date { return calendar.Today(s.now(), s.loc) }

// Start creates a session in the initial wizard state.
func (s *Service) Start(ctx context.Context) (*Page, error) {
	sess := session.New(s.now())
	sess.Wizard = wizard.New(s.catalog).Snapshot()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.metrics.ObserveSession()
	s.log.Debug("session started", "session_id", sess.ID)
	return s.page(ctx, sess)
}

// Get renders the current page of a session.
func (s *Service) Get(ctx context.Context, id string) (*Page, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, sess)
}

// Exists reports whether the session is still stored, without rendering it.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.sessions.Get(ctx, id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Apply runs one action. A rejected action leaves the stored session as it was, except for a
// rejected submit, which records the field errors on the form.
func (s *Service) Apply(ctx context.Context, id string, a Action) (*Page, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ctl, err := wizard.Restore(s.catalog, sess.Wizard)
	if err != nil {
		return nil, err
	}
	from := ctl.Step().Kind()

	err = s.apply(ctx, sess, ctl, a)
	s.metrics.ObserveTransition(string(a.Op), err)

	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		s.metrics.ObserveFieldErrors(fieldNames(verr.Fields))
		sess.UpdatedAt = s.now()
		if serr := s.sessions.Save(ctx, sess); serr != nil {
			return nil, serr
		}
		return nil, err
	case err != nil:
		s.log.Debug("action rejected", "session_id", id, "op", a.Op, "step", from, "error", err)
		return nil, err
	}

	sess.Wizard = ctl.Snapshot()
	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Debug("wizard transition", "session_id", id, "op", a.Op, "from", from, "to", ctl.Step().Kind())
	return s.page(ctx, sess)
}

func (s *Service) apply(ctx context.Context, sess *session.Session, ctl *wizard.Controller, a Action) error {
	today := s.Today()

	switch a.Op {
	case OpSelectEvent:
		if err := ctl.SelectEvent(a.Event, a.Duration); err != nil {
			return err
		}
		return s.openView(sess, ctl.View(), today)

	case OpSetView:
		if err := ctl.SetView(a.View); err != nil {
			return err
		}
		return s.openView(sess, a.View, today)

	case OpPrev, OpNext:
		if ctl.Step().Kind() != wizard.StepCalendar {
			return fmt.Errorf("%w: %s from %s", wizard.ErrInvalidTransition, a.Op, ctl.Step().Kind())
		}
		v, err := s.view(sess, ctl.View(), today)
		if err != nil {
			return err
		}
		if a.Op == OpPrev {
			v.Prev()
		} else {
			v.Next()
		}
		st := v.State()
		sess.Calendar = &st
		return nil

	case OpSelectDate:
		if ctl.Step().Kind() != wizard.StepCalendar || ctl.View() != model.ViewMonthly {
			return fmt.Errorf("%w: select date from %s", wizard.ErrInvalidTransition, ctl.Step().Kind())
		}
		v, err := s.view(sess, ctl.View(), today)
		if err != nil {
			return err
		}
		slot, err := v.Pick(ctx, today, a.Date, "")
		if err != nil {
			return err
		}
		return ctl.SelectDate(slot.Date)

	case OpClearDate:
		return ctl.ClearDate()

	case OpSelectTime:
		cal, ok := ctl.Step().(wizard.Calendar)
		if !ok || cal.PendingDate == nil {
			return fmt.Errorf("%w: select time from %s", wizard.ErrInvalidTransition, ctl.Step().Kind())
		}
		if err := s.checkDayTime(ctx, today, *cal.PendingDate, a.Time); err != nil {
			return err
		}
		if err := ctl.SelectTime(a.Time); err != nil {
			return err
		}
		sess.Form.Reset()
		return nil

	case OpSelectSlot:
		if ctl.Step().Kind() != wizard.StepCalendar || ctl.View() == model.ViewMonthly {
			return fmt.Errorf("%w: select slot from %s", wizard.ErrInvalidTransition, ctl.Step().Kind())
		}
		v, err := s.view(sess, ctl.View(), today)
		if err != nil {
			return err
		}
		slot, err := v.Pick(ctx, today, a.Date, a.Time)
		if err != nil {
			return err
		}
		if err := ctl.SelectSlot(slot); err != nil {
			return err
		}
		sess.Form.Reset()
		return nil

	case OpSetField:
		if ctl.Step().Kind() != wizard.StepBooking {
			return fmt.Errorf("%w: edit form from %s", wizard.ErrInvalidTransition, ctl.Step().Kind())
		}
		sess.Form.Set(a.Field, a.Value)
		return nil

	case OpSubmit:
		if ctl.Step().Kind() != wizard.StepBooking {
			return fmt.Errorf("%w: submit from %s", wizard.ErrInvalidTransition, ctl.Step().Kind())
		}
		if a.Form != nil {
			sess.Form.Data = *a.Form
		}
		data, err := sess.Form.Submit()
		if err != nil {
			return err
		}
		return ctl.Submit(data)

	case OpBack:
		if err := ctl.Back(); err != nil {
			return err
		}
		sess.Form.Reset()
		if ctl.Step().Kind() == wizard.StepEvents {
			sess.Calendar = nil
			return nil
		}
		return s.openView(sess, ctl.View(), today)

	case OpBackToStart:
		if err := ctl.BackToStart(); err != nil {
			return err
		}
		sess.Calendar = nil
		sess.Form.Reset()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, a.Op)
}

// openView positions a fresh view of kind on today.
func (s *Service) openView(sess *session.Session, kind model.CalendarView, today civil.Date) error {
	v, err := calendar.Open(kind, today, s.sources)
	if err != nil {
		return err
	}
	st := v.State()
	sess.Calendar = &st
	return nil
}

// view restores the session's view, reopening it on today when missing or stale.
func (s *Service) view(sess *session.Session, kind model.CalendarView, today civil.Date) (calendar.View, error) {
	if sess.Calendar == nil || sess.Calendar.Kind != kind {
		return calendar.Open(kind, today, s.sources)
	}
	return calendar.Restore(*sess.Calendar, s.sources)
}

// checkDayTime accepts only offered, available times for the pending monthly date.
func (s *Service) checkDayTime(ctx context.Context, today, date civil.Date, tm string) error {
	times, err := calendar.DayTimes(ctx, s.sources.Weekly, today, date)
	if err != nil {
		return err
	}
	for _, t := range times {
		if t.Time != tm {
			continue
		}
		if !t.Available {
			return calendar.ErrUnavailable
		}
		return nil
	}
	return fmt.Errorf("%w: %q", calendar.ErrUnknownSlot, tm)
}

// Reset discards a session's progress, as leaving the page would.
func (s *Service) Reset(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// Invite renders the calendar file of a confirmed booking.
func (s *Service) Invite(ctx context.Context, id string) ([]byte, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ctl, err := wizard.Restore(s.catalog, sess.Wizard)
	if err != nil {
		return nil, err
	}
	conf, ok := ctl.Step().(wizard.Confirmation)
	if !ok {
		return nil, fmt.Errorf("%w: invite from %s", wizard.ErrInvalidTransition, ctl.Step().Kind())
	}
	raw, err := invite.Render(s.meeting(conf), s.now())
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveInvite()
	return raw, nil
}

func (s *Service) meeting(c wizard.Confirmation) invite.Meeting {
	return invite.Meeting{
		Host:     s.catalog.Profile(),
		Event:    c.Event,
		Slot:     c.Slot,
		Attendee: c.Form,
		Location: s.loc,
		Domain:   s.domain,
	}
}

func fieldNames(fe booking.FieldErrors) []string {
	out := make([]string, 0, len(fe))
	for _, f := range fe.Fields() {
		out = append(out, string(f))
	}
	return out
}
