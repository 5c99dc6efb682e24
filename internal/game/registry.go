package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"soulsreq/internal/metrics"
)

// ErrUnknownGame is returned for identifiers no adapter is registered under.
var ErrUnknownGame = errors.New("unknown game")

// ErrDataUnavailable marks a dataset that could not be retrieved or was empty.
var ErrDataUnavailable = errors.New("data unavailable")

// DataUnavailableError reports why a game's dataset could not be used.
type DataUnavailableError struct {
	Game string
	Err  error
}

func (e *DataUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: data unavailable", e.Game)
	}
	return fmt.Sprintf("%s: data unavailable: %v", e.Game, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

func (e *DataUnavailableError) Is(target error) bool { return target == ErrDataUnavailable }

// Provider retrieves the raw record array for a dataset basename.
type Provider interface {
	Fetch(ctx context.Context, dataset string) ([]Raw, error)
}

// Registry ties game identifiers to adapters. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	provider Provider
	order    []*Adapter
	byID     map[string]*Adapter
}

// NewRegistry validates and registers adapters in the given order.
func NewRegistry(provider Provider, adapters ...*Adapter) (*Registry, error) {
	r := &Registry{
		provider: provider,
		order:    make([]*Adapter, 0, len(adapters)),
		byID:     make(map[string]*Adapter, len(adapters)),
	}
	for _, a := range adapters {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[a.ID]; dup {
			return nil, fmt.Errorf("adapter %q registered twice", a.ID)
		}
		r.byID[a.ID] = a
		r.order = append(r.order, a)
	}
	return r, nil
}

// Adapters returns adapters in registration order.
func (r *Registry) Adapters() []*Adapter {
	out := make([]*Adapter, len(r.order))
	copy(out, r.order)
	return out
}

// Default returns the first registered adapter, or nil for an empty registry.
func (r *Registry) Default() *Adapter {
	if len(r.order) == 0 {
		return nil
	}
	return r.order[0]
}

// Lookup returns the adapter registered under id.
func (r *Registry) Lookup(id string) (*Adapter, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}
	return a, nil
}

// MustLookup is Lookup for callers that only hold registered ids.
func (r *Registry) MustLookup(id string) *Adapter {
	a, err := r.Lookup(id)
	if err != nil {
		panic(err)
	}
	return a
}

// Load fetches and normalizes the dataset of game id. A failed or empty
// fetch is reported as a *DataUnavailableError.
func (r *Registry) Load(ctx context.Context, id string) ([]Weapon, error) {
	a, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	if r.provider == nil {
		return nil, r.unavailable(ctx, a, errors.New("no dataset provider configured"))
	}
	raws, err := r.provider.Fetch(ctx, a.Dataset)
	if err != nil {
		return nil, r.unavailable(ctx, a, err)
	}
	if len(raws) == 0 {
		return nil, r.unavailable(ctx, a, errors.New("dataset is empty"))
	}
	weapons := a.NormalizeAll(raws)
	metrics.DatasetLoads.WithLabelValues(a.ID, metrics.ResultOK).Inc()
	slog.DebugContext(ctx, "dataset loaded", "game", a.ID, "records", len(weapons))
	return weapons, nil
}

func (r *Registry) unavailable(ctx context.Context, a *Adapter, cause error) error {
	metrics.DatasetLoads.WithLabelValues(a.ID, metrics.ResultError).Inc()
	slog.WarnContext(ctx, "dataset unavailable", "game", a.ID, "dataset", a.Dataset, "error", cause)
	return &DataUnavailableError{Game: a.ID, Err: cause}
}
