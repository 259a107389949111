package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

const stateExt = ".json"

// FileStore keeps one document per key at <root>/<entity>/<family>.json.
// Writes go to a temp file in the same directory and are renamed into
// place, so readers see either the old or the new document.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// on the first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Root returns the state directory.
func (s *FileStore) Root() string { return s.root }

func (s *FileStore) path(entityID string, f model.Family) string {
	return filepath.Join(s.root, entityID, string(f)+stateExt)
}

func (s *FileStore) Get(entityID string, f model.Family) (model.State, bool, error) {
	if err := checkKey(entityID, f); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.path(entityID, f))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading state: %w", err)
	}
	st, err := model.DecodeState(f, data)
	if err != nil {
		return nil, false, err
	}
	return st, true, nil
}

func (s *FileStore) Set(entityID string, f model.Family, st model.State) error {
	if err := checkKey(entityID, f); err != nil {
		return err
	}
	data, err := model.EncodeState(f, st)
	if err != nil {
		return err
	}
	dir := filepath.Join(s.root, entityID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+string(f)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp state: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing state: %w", err)
	}
	if err := os.Rename(tmpName, s.path(entityID, f)); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(entityID string, f model.Family) error {
	if err := checkKey(entityID, f); err != nil {
		return err
	}
	err := os.Remove(s.path(entityID, f))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing state: %w", err)
	}
	return nil
}

func (s *FileStore) Families(entityID string) ([]model.Family, error) {
	if err := checkKey(entityID, model.FamilyBalancete); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, entityID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state dir: %w", err)
	}

	var out []model.Family
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, stateExt) {
			continue
		}
		f := model.Family(strings.TrimSuffix(name, stateExt))
		if f.Valid() {
			out = append(out, f)
		}
	}
	return sortFamilies(out), nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
