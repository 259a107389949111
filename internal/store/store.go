// Package store persists the consolidated state of each (legal entity,
// report family) pair as a whole JSON document.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/config"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

// EntityStateStore maps (entity, family) to the latest consolidated state.
// Get of a key never written returns (nil, false, nil), which is distinct
// from a stored empty state.
type EntityStateStore interface {
	Get(entityID string, f model.Family) (model.State, bool, error)
	Set(entityID string, f model.Family, s model.State) error
	Clear(entityID string, f model.Family) error
	Families(entityID string) ([]model.Family, error)
}

// Backend is a store holding resources that must be released.
type Backend interface {
	EntityStateStore
	Close() error
}

// Open returns the backend configured for the workspace rooted at root.
func Open(cfg *config.Config, root string) (Backend, error) {
	path := config.Resolve(root, cfg.Store.Path)
	switch cfg.Store.Driver {
	case config.DriverFile, "":
		return NewFileStore(path), nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// checkKey validates a key before it reaches a backend. Entity ids must
// already be normalized so every backend agrees on the key.
func checkKey(entityID string, f model.Family) error {
	norm, err := model.NormalizeEntityID(entityID)
	if err != nil {
		return err
	}
	if norm != entityID {
		return fmt.Errorf("entity id %q is not normalized (want %q)", entityID, norm)
	}
	if !f.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownFamily, string(f))
	}
	return nil
}

// sortFamilies orders fs the way model.Families lists them.
func sortFamilies(fs []model.Family) []model.Family {
	rank := map[model.Family]int{}
	for i, f := range model.Families() {
		rank[f] = i
	}
	sort.Slice(fs, func(i, j int) bool { return rank[fs[i]] < rank[fs[j]] })
	return fs
}
