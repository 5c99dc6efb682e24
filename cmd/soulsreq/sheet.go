package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soulsreq/internal/game"
	"soulsreq/internal/sheet"
)

func sheetCmd(a *app) *cobra.Command {
	var (
		gameID, preset, stats, out string
		hideUnusable               bool
	)
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Write a printable PDF armament sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, player, err := a.resolvePlayer(gameID, preset, stats)
			if err != nil {
				return err
			}
			weapons, err := a.registry.Load(cmd.Context(), g.ID)
			if err != nil {
				return err
			}
			items := game.Assess(weapons, player, g)
			if hideUnusable {
				items = game.HideUnusable(items)
			}
			pdf, err := sheet.Generate(g, player, game.GroupByCategory(items, game.CategoryOrder(weapons)), "")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, pdf, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d armaments)\n", out, len(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&gameID, "game", "", "Game id (default: first registered game)")
	cmd.Flags().StringVar(&stats, "stats", "", "Stat block, e.g. str=12,dex=10")
	cmd.Flags().StringVar(&preset, "preset", "", "Start from a named preset")
	cmd.Flags().StringVarP(&out, "out", "o", "armaments.pdf", "Output file")
	cmd.Flags().BoolVar(&hideUnusable, "hide-unusable", false, "Omit armaments that cannot be wielded")
	return cmd
}
