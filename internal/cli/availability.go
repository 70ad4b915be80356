package cli

import (
	"fmt"
	"text/tabwriter"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
)

func newAvailabilityCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Manage the host's weekly availability table",
	}
	cmd.AddCommand(newAvailabilityShowCmd(flags))
	cmd.AddCommand(newAvailabilitySetCmd(flags))
	cmd.AddCommand(newAvailabilityClearCmd(flags))
	return cmd
}

func newAvailabilityShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Show the configured slots of a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := civil.ParseDate(args[0])
			if err != nil {
				return err
			}
			st, closeDB, err := flags.store(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			slots, found, err := st.DaySlots(cmd.Context(), day)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"date": day, "configured": found, "slots": slots})
			}
			if !found {
				cmd.Printf("%s is not configured; every slot is open\n", day)
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tAVAILABLE")
			for _, s := range slots {
				fmt.Fprintf(tw, "%s\t%t\n", s.Time, s.Available)
			}
			return tw.Flush()
		},
	}
}

func newAvailabilitySetCmd(flags *rootFlags) *cobra.Command {
	var closed bool
	cmd := &cobra.Command{
		Use:   "set <date> <time>...",
		Short: "Open (or with --closed, close) slots on a day",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := civil.ParseDate(args[0])
			if err != nil {
				return err
			}
			st, closeDB, err := flags.store(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			for _, slot := range args[1:] {
				if err := st.SetSlot(cmd.Context(), day, slot, !closed); err != nil {
					return err
				}
			}
			state := "open"
			if closed {
				state = "closed"
			}
			cmd.Printf("%s: %d slot(s) %s\n", day, len(args)-1, state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&closed, "closed", false, "Mark the slots unavailable")
	return cmd
}

func newAvailabilityClearCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <date>",
		Short: "Forget a day's configuration so every slot is open again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := civil.ParseDate(args[0])
			if err != nil {
				return err
			}
			st, closeDB, err := flags.store(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := st.ClearDay(cmd.Context(), day)
			if err != nil {
				return err
			}
			cmd.Printf("%s: removed %d slot(s)\n", day, n)
			return nil
		},
	}
}
