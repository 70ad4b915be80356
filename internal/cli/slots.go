package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"booking-wizard/internal/calendar"
	"booking-wizard/internal/model"
)

func newSlotsCmd(flags *rootFlags) *cobra.Command {
	var (
		view   string
		offset int
	)
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print a calendar window with its selectable cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := calendar.ParseView(view)
			if err != nil {
				return err
			}
			loc, err := flags.location()
			if err != nil {
				return err
			}
			src, closeDB, err := flags.sources(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			today := calendar.Today(now(), loc)
			v, err := calendar.Open(kind, today, src)
			if err != nil {
				return err
			}
			for i := 0; i < offset; i++ {
				v.Next()
			}
			for i := 0; i > offset; i-- {
				v.Prev()
			}
			g, err := v.Grid(cmd.Context(), today, nil)
			if err != nil {
				return err
			}
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), g)
			}
			return printGrid(cmd, g)
		},
	}
	cmd.Flags().StringVar(&view, "view", "monthly", "Calendar view: monthly, weekly or column")
	cmd.Flags().IntVar(&offset, "offset", 0, "Windows to move from the current one (negative goes back)")
	return cmd
}

// printGrid marks selectable cells with their label and the rest with a dot.
func printGrid(cmd *cobra.Command, g calendar.Grid) error {
	cmd.Println(g.Title)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', tabwriter.AlignRight)
	var head []string
	if g.View != model.ViewMonthly {
		head = append(head, "")
	}
	for _, d := range g.Days {
		head = append(head, calendar.WeekdayLabel(d))
	}
	fmt.Fprintln(tw, strings.Join(head, "\t")+"\t")
	for _, row := range g.Rows {
		var cells []string
		if g.View != model.ViewMonthly && len(row) > 0 {
			cells = append(cells, row[0].Time)
		}
		for _, c := range row {
			switch {
			case !c.InWindow:
				cells = append(cells, "")
			case !c.Selectable:
				cells = append(cells, ".")
			case g.View == model.ViewMonthly:
				cells = append(cells, fmt.Sprint(c.Date.Day))
			default:
				cells = append(cells, "o")
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}
