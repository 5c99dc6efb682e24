package web

import "soulsreq/internal/game"

// GameView describes one adapter for game selection.
type GameView struct {
	ID         string               `json:"id"`
	Label      string               `json:"label"`
	Attrs      []game.Attr          `json:"attrs"`
	AttrLabels map[game.Attr]string `json:"attrLabels"`
	TwoHand    game.TwoHand         `json:"twoHand"`
}

// SessionView is the caller's current game, stats and matched preset.
type SessionView struct {
	Game   string     `json:"game"`
	Stats  game.Stats `json:"stats"`
	Preset string     `json:"preset"`
}

// ArmamentsView is the evaluated dataset of the session's game.
type ArmamentsView struct {
	Game   string            `json:"game"`
	View   string            `json:"view"`
	Shown  int               `json:"shown"`
	Total  int               `json:"total"`
	Items  []game.Assessment `json:"items,omitempty"`
	Groups []game.Group      `json:"groups,omitempty"`
}

func gameView(a *game.Adapter) GameView {
	labels := make(map[game.Attr]string, len(a.Attrs))
	for _, k := range a.Attrs {
		labels[k] = a.LabelFor(k)
	}
	return GameView{ID: a.ID, Label: a.Label, Attrs: a.Attrs, AttrLabels: labels, TwoHand: a.TwoHand}
}
