package cart

import "sync"

// Store is the synchronous local persistence behind the engine. Every cart
// mutation writes a snapshot here before the call returns; the remote mirror
// only ever catches up asynchronously.
type Store interface {
	Save(namespace, owner string, snap Snapshot) error
	Load(namespace, owner string) (Snapshot, bool, error)
	Delete(namespace, owner string) error
}

type memoryStore struct {
	mu    sync.RWMutex
	items map[string]Snapshot
}

func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string]Snapshot)}
}

func storeKey(namespace, owner string) string {
	return namespace + ":" + owner
}

func (s *memoryStore) Save(namespace, owner string, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[storeKey(namespace, owner)] = snap
	return nil
}

func (s *memoryStore) Load(namespace, owner string) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.items[storeKey(namespace, owner)]
	return snap, ok, nil
}

func (s *memoryStore) Delete(namespace, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, storeKey(namespace, owner))
	return nil
}
