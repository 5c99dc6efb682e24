package session

import (
	"context"
	"sync"

	"soulsreq/internal/game"
)

// Loader loads the normalized armaments of a game. *game.Registry
// implements it.
type Loader interface {
	Load(ctx context.Context, id string) ([]game.Weapon, error)
}

// Snapshot is the load state of the selected game.
type Snapshot struct {
	Game    string
	Loading bool
	Weapons []game.Weapon
	Err     error
}

// Selection tracks the active game of one session and its dataset. A
// load that completes for a game other than the active one is discarded.
type Selection struct {
	loader Loader

	mu   sync.Mutex
	snap Snapshot
	done chan struct{}
}

func NewSelection(loader Loader) *Selection {
	return &Selection{loader: loader}
}

// Select makes id the active game and starts loading its dataset. The
// load is detached from ctx cancellation so it can outlive a request.
func (s *Selection) Select(ctx context.Context, id string) {
	done := make(chan struct{})
	s.mu.Lock()
	s.snap = Snapshot{Game: id, Loading: true}
	s.done = done
	s.mu.Unlock()

	lctx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		weapons, err := s.loader.Load(lctx, id)
		s.complete(id, weapons, err)
	}()
}

// complete stores a finished load if id is still the active game.
func (s *Selection) complete(id string, weapons []game.Weapon, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Game != id {
		return false
	}
	s.snap = Snapshot{Game: id, Weapons: weapons, Err: err}
	return true
}

// Snapshot returns the current state.
func (s *Selection) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Wait blocks until the most recent load has finished or ctx is done.
func (s *Selection) Wait(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return s.Snapshot(), ctx.Err()
		}
	}
	return s.Snapshot(), nil
}
