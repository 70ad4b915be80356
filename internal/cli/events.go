package cli

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"booking-wizard/internal/catalog"
)

func newEventsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List the bookable event types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := catalog.Default()
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"host":   cat.Profile(),
					"events": cat.Events(),
				})
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			host := cat.Profile()
			cmd.Printf("%s (%s)\n\n", host.Name, host.Email)
			tw.Write([]byte("TITLE\tDURATIONS\n"))
			for _, ev := range cat.Events() {
				tw.Write([]byte(ev.Title + "\t" + strings.Join(ev.Durations, ", ") + "\n"))
			}
			return tw.Flush()
		},
	}
}
