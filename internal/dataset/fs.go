// Package dataset supplies raw per-game record arrays to the game registry.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/tidwall/gjson"

	"soulsreq/internal/game"
)

// FSProvider reads "<dataset>.json" files from a filesystem.
type FSProvider struct {
	FS fs.FS
}

// NewDirProvider returns an FSProvider rooted at dir.
func NewDirProvider(dir string) *FSProvider {
	return &FSProvider{FS: os.DirFS(dir)}
}

// Fetch returns the records of the named dataset in file order.
func (p *FSProvider) Fetch(ctx context.Context, dataset string) ([]game.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.FS == nil {
		return nil, errors.New("dataset: no filesystem")
	}
	name := path.Clean(dataset) + ".json"
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("dataset: invalid name %q", dataset)
	}
	b, err := fs.ReadFile(p.FS, name)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", name, err)
	}
	return Parse(b)
}

// Parse splits a JSON array document into records.
func Parse(b []byte) ([]game.Raw, error) {
	if !gjson.ValidBytes(b) {
		return nil, errors.New("dataset: invalid JSON")
	}
	doc := gjson.ParseBytes(b)
	if !doc.IsArray() {
		return nil, errors.New("dataset: top-level value is not an array")
	}
	return doc.Array(), nil
}
