package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"soulsreq/internal/game"
	"soulsreq/internal/metrics"
	"soulsreq/internal/sheet"
)

const (
	viewList  = "list"
	viewBlock = "block"
)

// GET /api/games/{id}/presets
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Registry.Lookup(id); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.Presets.For(id))
}

type presetRequest struct {
	Name string `json:"name"`
}

// POST /api/session/preset
func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req presetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	st, id := s.getOrCreateState(ctx, w, r)
	a, err := s.Registry.Lookup(st.Game)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	next, ok := s.Presets.Apply(a, st.Stats, req.Name)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown preset: "+req.Name)
		return
	}
	st.Stats = next
	if err := s.Store.Put(ctx, id, st); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save state")
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(a, st))
}

// GET /api/session/armaments?view=list|block&hide_unusable=1
func (s *Server) handleArmaments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := r.URL.Query().Get("view")
	if view == "" {
		view = viewList
	}
	if view != viewList && view != viewBlock {
		respondError(w, http.StatusBadRequest, "view must be list or block")
		return
	}
	hide := queryBool(r, "hide_unusable")

	st, id := s.getOrCreateState(ctx, w, r)
	a, weapons, items, status, err := s.assessments(ctx, id, st)
	if err != nil {
		respondError(w, status, err.Error())
		return
	}
	for _, it := range items {
		metrics.Verdicts.WithLabelValues(a.ID, it.Verdict.String()).Inc()
	}
	if hide {
		items = game.HideUnusable(items)
	}
	ord := game.CategoryOrder(weapons)
	out := ArmamentsView{Game: a.ID, View: view, Shown: len(items), Total: len(weapons)}
	if view == viewBlock {
		out.Groups = game.GroupByCategory(items, ord)
	} else {
		out.Items = game.SortList(items, ord)
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /api/session/sheet.pdf
func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, id := s.getOrCreateState(ctx, w, r)
	a, weapons, items, status, err := s.assessments(ctx, id, st)
	if err != nil {
		respondError(w, status, err.Error())
		return
	}
	if queryBool(r, "hide_unusable") {
		items = game.HideUnusable(items)
	}
	pdf, err := sheet.Generate(a, st.Stats, game.GroupByCategory(items, game.CategoryOrder(weapons)), "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="armaments.pdf"`)
	_, _ = w.Write(pdf)
}

func queryBool(r *http.Request, key string) bool {
	switch r.URL.Query().Get(key) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
