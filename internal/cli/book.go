package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/model"
	"booking-wizard/internal/scheduler"
	"booking-wizard/internal/session"
)

// maxWeeks bounds how far ahead the weekly view is paged to reach a date.
const maxWeeks = 520

type bookOptions struct {
	event, duration string
	date, time      string
	form            model.BookingFormData
	out             string
	domain          string
}

func newBookCmd(flags *rootFlags) *cobra.Command {
	var o bookOptions
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Walk the wizard for one slot and write the meeting invite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBook(cmd, flags, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.event, "event", "", "Event type title")
	f.StringVar(&o.duration, "duration", "", "Duration chip, defaults to the event's first")
	f.StringVar(&o.date, "date", "", "Date, YYYY-MM-DD")
	f.StringVar(&o.time, "time", "", "Start time, HH:MM")
	f.StringVar(&o.form.Name, "name", "", "Attendee name")
	f.StringVar(&o.form.Email, "email", "", "Attendee email")
	f.StringVar(&o.form.Phone, "phone", "", "Attendee phone")
	f.StringVar(&o.form.Notes, "notes", "", "Additional notes")
	f.StringVarP(&o.out, "out", "o", "meeting.ics", `Invite path, "-" for stdout`)
	f.StringVar(&o.domain, "invite-domain", envOr("INVITE_DOMAIN", "calid.com"), "Right-hand side of the invite UID")
	for _, name := range []string{"event", "date", "time"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runBook(cmd *cobra.Command, flags *rootFlags, o bookOptions) error {
	ctx := cmd.Context()
	day, err := civil.ParseDate(o.date)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}
	loc, err := flags.location()
	if err != nil {
		return err
	}
	src, closeDB, err := flags.sources(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	svc := scheduler.New(scheduler.Options{
		Sources:      src,
		Sessions:     session.NewMemoryStore(time.Hour),
		Location:     loc,
		InviteDomain: o.domain,
		Now:          now,
	})
	page, err := svc.Start(ctx)
	if err != nil {
		return err
	}
	id := page.SessionID

	steps := []scheduler.Action{
		{Op: scheduler.OpSelectEvent, Event: o.event, Duration: o.duration},
		{Op: scheduler.OpSetView, View: model.ViewWeekly},
	}
	for _, a := range steps {
		if page, err = svc.Apply(ctx, id, a); err != nil {
			return fmt.Errorf("%s: %w", a.Op, err)
		}
	}
	for i := 0; page.Grid != nil && len(page.Grid.Days) > 0 && page.Grid.Days[len(page.Grid.Days)-1].Before(day); i++ {
		if i == maxWeeks {
			return fmt.Errorf("%s is too far ahead", day)
		}
		if page, err = svc.Apply(ctx, id, scheduler.Action{Op: scheduler.OpNext}); err != nil {
			return err
		}
	}
	if _, err := svc.Apply(ctx, id, scheduler.Action{Op: scheduler.OpSelectSlot, Date: day, Time: o.time}); err != nil {
		return fmt.Errorf("slot %s %s: %w", day, o.time, err)
	}

	form := o.form
	page, err = svc.Apply(ctx, id, scheduler.Action{Op: scheduler.OpSubmit, Form: &form})
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields.Fields() {
			cmd.PrintErrf("--%s: %s\n", f, verr.Fields[f])
		}
		return booking.ErrInvalid
	}
	if err != nil {
		return err
	}

	raw, err := svc.Invite(ctx, id)
	if err != nil {
		return err
	}
	if o.out == "-" {
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	}
	if err := os.WriteFile(o.out, raw, 0o644); err != nil {
		return err
	}
	cmd.Printf("%s\nwrote %s\n", page.Summary, o.out)
	return nil
}
