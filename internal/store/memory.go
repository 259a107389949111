package store

import (
	"sync"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

// MemoryStore keeps encoded documents in memory. Values are decoded on
// every Get, so callers never share state with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[model.Family][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]map[model.Family][]byte{}}
}

func (s *MemoryStore) Get(entityID string, f model.Family) (model.State, bool, error) {
	if err := checkKey(entityID, f); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	data, ok := s.docs[entityID][f]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	st, err := model.DecodeState(f, data)
	if err != nil {
		return nil, false, err
	}
	return st, true, nil
}

func (s *MemoryStore) Set(entityID string, f model.Family, st model.State) error {
	if err := checkKey(entityID, f); err != nil {
		return err
	}
	data, err := model.EncodeState(f, st)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs[entityID] == nil {
		s.docs[entityID] = map[model.Family][]byte{}
	}
	s.docs[entityID][f] = data
	return nil
}

func (s *MemoryStore) Clear(entityID string, f model.Family) error {
	if err := checkKey(entityID, f); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs[entityID], f)
	return nil
}

func (s *MemoryStore) Families(entityID string) ([]model.Family, error) {
	if err := checkKey(entityID, model.FamilyBalancete); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Family
	for f := range s.docs[entityID] {
		out = append(out, f)
	}
	return sortFamilies(out), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
