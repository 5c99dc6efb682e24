package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func gamesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List supported games and their presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tGAME\tATTRIBUTES\tTWO-HAND\tPRESETS")
			for _, g := range a.registry.Adapters() {
				labels := make([]string, 0, len(g.Attrs))
				for _, k := range g.Attrs {
					labels = append(labels, g.LabelFor(k))
				}
				twoHand := "none"
				if g.TwoHand.Enabled() {
					twoHand = fmt.Sprintf("%s x%g %s", g.LabelFor(g.TwoHand.Affected), g.TwoHand.Multiplier, g.TwoHand.Rounding)
				}
				names := make([]string, 0)
				for _, p := range a.presets.For(g.ID) {
					names = append(names, p.Name)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", g.ID, g.Label, strings.Join(labels, " "), twoHand, strings.Join(names, ", "))
			}
			return tw.Flush()
		},
	}
}
