package session

import (
	"context"

	"soulsreq/internal/game"
)

type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	Update(ctx context.Context, id string, fn func(cur T, ok bool) T) (T, error)
	NewID() string
}

// PlayerState is what a session remembers between requests.
type PlayerState struct {
	Game  string     `json:"game"`
	Stats game.Stats `json:"stats"`
}
