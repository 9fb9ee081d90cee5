package storage

import "sync"

// MemoryStore keeps blobs in a map. Used by tests and as a scratch store.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	// Writes counts successful Set calls.
	Writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (s *MemoryStore) Set(key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	s.Writes++
	return nil
}

func (s *MemoryStore) Close() error { return nil }
