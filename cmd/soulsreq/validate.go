package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load every game's dataset and report record counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			adapters := a.registry.Adapters()
			counts := make([]int, len(adapters))
			errs := make([]error, len(adapters))

			var g errgroup.Group
			g.SetLimit(4)
			for i, ad := range adapters {
				g.Go(func() error {
					weapons, err := a.registry.Load(cmd.Context(), ad.ID)
					counts[i], errs[i] = len(weapons), err
					return nil
				})
			}
			_ = g.Wait()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATASET\tRECORDS\tSTATUS")
			for i, ad := range adapters {
				status := "ok"
				if errs[i] != nil {
					status = errs[i].Error()
				}
				fmt.Fprintf(tw, "%s\t%s.json\t%d\t%s\n", ad.ID, ad.Dataset, counts[i], status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return errors.Join(errs...)
		},
	}
}
