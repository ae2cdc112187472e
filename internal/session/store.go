package session

import (
	"encoding/json"
	"sync"
)

// Store persists at most one session record under StorageKey.
//
// Persist on an unavailable storage medium is a silent no-op, and Restore
// never surfaces corruption: malformed or partial data degrades to "absent"
// so a damaged record can only ever log the user out, not crash the caller.
type Store interface {
	Persist(s Session) error
	Restore() (Session, bool)
	Clear()
}

// MemoryStore keeps the serialized record in process memory, which scopes the
// session to the process lifetime the same way tab-scoped browser storage is
// cleared when the tab ends.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Persist serializes the session and stores it under StorageKey, replacing
// any previous record.
func (m *MemoryStore) Persist(s Session) error {
	if m == nil {
		return nil
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.blobs[StorageKey] = raw
	m.mu.Unlock()
	return nil
}

// Restore deserializes the stored record. It returns absent when no record
// exists, when the blob fails to parse, or when the parsed session is not
// fully formed; a bad record is scrubbed so later restores stay cheap.
func (m *MemoryStore) Restore() (Session, bool) {
	if m == nil {
		return Session{}, false
	}

	m.mu.RLock()
	raw, ok := m.blobs[StorageKey]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || !s.Valid() {
		m.Clear()
		return Session{}, false
	}
	return s, true
}

// Clear removes the stored record. Clearing an empty store is not an error.
func (m *MemoryStore) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	delete(m.blobs, StorageKey)
	m.mu.Unlock()
}

// Corrupt overwrites the stored blob with raw bytes. It exists so tests can
// exercise the degraded-restore path without reaching into the store.
func (m *MemoryStore) Corrupt(raw []byte) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.blobs[StorageKey] = raw
	m.mu.Unlock()
}
