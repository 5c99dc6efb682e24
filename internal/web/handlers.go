package web

import (
	"context"
	"errors"
	"net/http"

	"soulsreq/internal/game"
	"soulsreq/internal/session"
)

// defaultStats is what a fresh session starts with.
var defaultStats = game.Stats{game.Str: 10, game.Dex: 10}

func (s *Server) newState() session.PlayerState {
	st := session.PlayerState{Stats: defaultStats.Clone()}
	if a := s.Registry.Default(); a != nil {
		st.Game = a.ID
	}
	return st
}

func (s *Server) getOrCreateState(ctx context.Context, w http.ResponseWriter, r *http.Request) (session.PlayerState, string) {
	id := s.sessionID(r)
	if id == "" {
		id = s.Store.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	st, ok, _ := s.Store.Get(ctx, id)
	if !ok {
		st = s.newState()
		_ = s.Store.Put(ctx, id, st)
	}
	return st, id
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// selection returns the session's dataset selection, making sure it
// tracks gameID. reload restarts the load even when gameID is already active.
func (s *Server) selection(ctx context.Context, sessionID, gameID string, reload bool) *session.Selection {
	sel, ok := s.selections.Get(sessionID)
	if !ok {
		fresh := session.NewSelection(s.Registry)
		if prev, found, _ := s.selections.PeekOrAdd(sessionID, fresh); found {
			sel = prev
		} else {
			sel = fresh
		}
	}
	if reload || sel.Snapshot().Game != gameID {
		sel.Select(ctx, gameID)
	}
	return sel
}

// GET /api/games
func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	adapters := s.Registry.Adapters()
	out := make([]GameView, 0, len(adapters))
	for _, a := range adapters {
		out = append(out, gameView(a))
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /api/session
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	st, _ := s.getOrCreateState(r.Context(), w, r)
	a, err := s.Registry.Lookup(st.Game)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(a, st))
}

func (s *Server) sessionView(a *game.Adapter, st session.PlayerState) SessionView {
	return SessionView{
		Game:   st.Game,
		Stats:  st.Stats.Only(a.Attrs),
		Preset: s.Presets.Match(a, st.Stats),
	}
}

type selectGameRequest struct {
	Game string `json:"game"`
}

// POST /api/session/game
func (s *Server) handleSelectGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req selectGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	a, err := s.Registry.Lookup(req.Game)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	_, id := s.getOrCreateState(ctx, w, r)
	st, err := s.Store.Update(ctx, id, func(cur session.PlayerState, ok bool) session.PlayerState {
		if !ok {
			cur = s.newState()
		}
		cur.Game = a.ID
		return cur
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save state")
		return
	}
	s.selection(ctx, id, a.ID, true)
	respondJSON(w, http.StatusOK, s.sessionView(a, st))
}

type statsRequest struct {
	Stats game.Stats `json:"stats"`
}

// PUT /api/session/stats merges the given attributes into the session.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req statsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad request body")
		return
	}
	for k, v := range req.Stats {
		if !k.Valid() {
			respondError(w, http.StatusBadRequest, "unknown attribute: "+string(k))
			return
		}
		if v < 0 {
			respondError(w, http.StatusBadRequest, "negative value for "+string(k))
			return
		}
	}
	_, id := s.getOrCreateState(ctx, w, r)
	st, err := s.Store.Update(ctx, id, func(cur session.PlayerState, ok bool) session.PlayerState {
		if !ok {
			cur = s.newState()
		}
		next := cur.Stats.Clone()
		for k, v := range req.Stats {
			next[k] = v
		}
		cur.Stats = next
		return cur
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save state")
		return
	}
	a, err := s.Registry.Lookup(st.Game)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.sessionView(a, st))
}

// assessments loads the session's dataset and evaluates it. The returned
// status is the HTTP status to report when err is non-nil.
func (s *Server) assessments(ctx context.Context, sessionID string, st session.PlayerState) (*game.Adapter, []game.Weapon, []game.Assessment, int, error) {
	a, err := s.Registry.Lookup(st.Game)
	if err != nil {
		return nil, nil, nil, http.StatusInternalServerError, err
	}
	sel := s.selection(ctx, sessionID, a.ID, false)
	snap, err := sel.Wait(ctx)
	if err != nil {
		return nil, nil, nil, http.StatusAccepted, errors.New("still loading")
	}
	if snap.Game != a.ID || snap.Loading {
		return nil, nil, nil, http.StatusAccepted, errors.New("still loading")
	}
	if snap.Err != nil {
		if errors.Is(snap.Err, game.ErrDataUnavailable) {
			return nil, nil, nil, http.StatusServiceUnavailable, snap.Err
		}
		return nil, nil, nil, http.StatusInternalServerError, snap.Err
	}
	return a, snap.Weapons, game.Assess(snap.Weapons, st.Stats, a), http.StatusOK, nil
}
