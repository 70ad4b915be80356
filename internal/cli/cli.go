// Package cli implements bookctl, a terminal front end to the booking wizard and the host's
// availability table.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"booking-wizard/internal/availability"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/store"
)

type rootFlags struct {
	json        bool
	databaseURL string
	timezone    string
	seed        uint64
	ratio       float64
	dates       []string
}

// swapped in tests
var (
	now    = time.Now
	openDB = func(ctx context.Context, url string) (store.DB, func(), error) {
		pool, err := pgxpool.New(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pool, pool.Close, nil
	}
)

// Execute runs bookctl with args, writing to out.
func Execute(args []string, out io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "bookctl",
		Short:         "Browse event types, walk the booking wizard and manage host availability",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.json, "json", false, "Print JSON instead of tables")
	pf.StringVar(&flags.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres URL for the host availability table")
	pf.StringVar(&flags.timezone, "timezone", envOr("TIMEZONE", "Asia/Kolkata"), "Host time zone")
	pf.Uint64Var(&flags.seed, "column-seed", 1, "Seed of the column view placeholder availability")
	pf.Float64Var(&flags.ratio, "column-ratio", 0.7, "Share of column slots the placeholder opens")
	pf.StringSliceVar(&flags.dates, "available-dates", nil, "Days the monthly view offers (YYYY-MM-DD, comma separated); empty opens every day")

	cmd.AddCommand(newEventsCmd(flags))
	cmd.AddCommand(newSlotsCmd(flags))
	cmd.AddCommand(newBookCmd(flags))
	cmd.AddCommand(newAvailabilityCmd(flags))
	return cmd
}

func (f *rootFlags) location() (*time.Location, error) {
	loc, err := time.LoadLocation(f.timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", f.timezone, err)
	}
	return loc, nil
}

// sources limits the monthly view to --available-dates and reads weekly availability from
// Postgres when a database is configured.
func (f *rootFlags) sources(ctx context.Context) (calendar.Sources, func(), error) {
	src := calendar.DefaultSources(f.seed, f.ratio)
	if len(f.dates) > 0 {
		days := make([]civil.Date, 0, len(f.dates))
		for _, raw := range f.dates {
			d, err := civil.ParseDate(strings.TrimSpace(raw))
			if err != nil {
				return calendar.Sources{}, nil, fmt.Errorf("--available-dates: %w", err)
			}
			days = append(days, d)
		}
		src.Monthly = availability.NewDates(days...)
	}
	if f.databaseURL == "" {
		return src, func() {}, nil
	}
	db, closeDB, err := openDB(ctx, f.databaseURL)
	if err != nil {
		return calendar.Sources{}, nil, fmt.Errorf("db: %w", err)
	}
	src.Weekly = availability.Stored{Reader: store.New(db)}
	return src, closeDB, nil
}

func (f *rootFlags) store(ctx context.Context) (*store.Store, func(), error) {
	if f.databaseURL == "" {
		return nil, nil, fmt.Errorf("--database-url or DATABASE_URL is required")
	}
	db, closeDB, err := openDB(ctx, f.databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("db: %w", err)
	}
	return store.New(db), closeDB, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
