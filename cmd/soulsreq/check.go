package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"soulsreq/internal/game"
)

type checkOptions struct {
	game         string
	stats        string
	preset       string
	view         string
	hideUnusable bool
	json         bool
}

func checkCmd(a *app) *cobra.Command {
	var o checkOptions
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate every armament of a game against a stat block",
		Example: `  soulsreq check --game DSR --preset Knight
  soulsreq check --game ER --stats str=12,dex=10 --hide-unusable`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, player, err := a.resolvePlayer(o.game, o.preset, o.stats)
			if err != nil {
				return err
			}
			weapons, err := a.registry.Load(cmd.Context(), g.ID)
			if err != nil {
				return err
			}
			items := game.Assess(weapons, player, g)
			shown := items
			if o.hideUnusable {
				shown = game.HideUnusable(items)
			}
			ord := game.CategoryOrder(weapons)
			w := cmd.OutOrStdout()
			switch o.view {
			case "block":
				groups := game.GroupByCategory(shown, ord)
				if o.json {
					return writeJSON(w, groups)
				}
				return printGroups(w, g, groups)
			case "list", "":
				list := game.SortList(shown, ord)
				if o.json {
					return writeJSON(w, list)
				}
				if err := printList(w, g, list); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "\n%d shown (of %d) for %s, preset: %s\n", len(shown), len(weapons), g.Label, a.presets.Match(g, player))
				return err
			default:
				return fmt.Errorf("unknown view %q: want list or block", o.view)
			}
		},
	}
	cmd.Flags().StringVar(&o.game, "game", "", "Game id (default: first registered game)")
	cmd.Flags().StringVar(&o.stats, "stats", "", "Stat block, e.g. str=12,dex=10")
	cmd.Flags().StringVar(&o.preset, "preset", "", "Start from a named preset; --stats overrides individual keys")
	cmd.Flags().StringVar(&o.view, "view", "list", "Output layout: list or block")
	cmd.Flags().BoolVar(&o.hideUnusable, "hide-unusable", false, "Omit armaments that cannot be wielded")
	cmd.Flags().BoolVar(&o.json, "json", false, "Print JSON")
	return cmd
}

// resolvePlayer picks the adapter and builds the stat block from an
// optional preset plus explicit overrides.
func (a *app) resolvePlayer(gameID, preset, stats string) (*game.Adapter, game.Stats, error) {
	g := a.registry.Default()
	if gameID != "" {
		var err error
		if g, err = a.registry.Lookup(gameID); err != nil {
			return nil, nil, err
		}
	}
	if g == nil {
		return nil, nil, fmt.Errorf("no games registered")
	}
	player := game.Stats{}
	if preset != "" {
		var ok bool
		if player, ok = a.presets.Apply(g, player, preset); !ok {
			return nil, nil, fmt.Errorf("unknown preset %q for %s", preset, g.ID)
		}
	}
	overrides, err := game.ParseStats(stats)
	if err != nil {
		return nil, nil, err
	}
	for k, v := range overrides {
		player[k] = v
	}
	return g, player, nil
}

func printList(w io.Writer, g *game.Adapter, items []game.Assessment) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "VERDICT\tNAME\tCATEGORY")
	for _, k := range g.Attrs {
		fmt.Fprintf(tw, "\t%s", g.LabelFor(k))
	}
	fmt.Fprintln(tw)
	for _, it := range items {
		printRow(tw, g, it)
	}
	return tw.Flush()
}

func printGroups(w io.Writer, g *game.Adapter, groups []game.Group) error {
	for _, grp := range groups {
		fmt.Fprintf(w, "== %s (%d item(s))\n", grp.Category, len(grp.Items))
		if err := printList(w, g, grp.Items); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printRow(w io.Writer, g *game.Adapter, it game.Assessment) {
	fmt.Fprintf(w, "%s\t%s\t%s", it.Verdict.Label(), it.Weapon.Name, it.Weapon.Category)
	for _, k := range g.Attrs {
		fmt.Fprintf(w, "\t%d", it.Weapon.Requirements.Get(k))
	}
	fmt.Fprintln(w)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
