package collections

import (
	"errors"
	"maps"
	"slices"
	"sync"
)

// ErrSlotNotFound is returned by a Storage when nothing has been saved under a key yet.
var ErrSlotNotFound = errors.New("collection slot not found")

// Storage is the durable boundary for the collections. Each key holds a full
// serialized snapshot that is replaced on every Save.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

// MemoryStorage keeps slots in process memory. Nothing survives a restart.
type MemoryStorage struct {
	mu    sync.RWMutex
	slots map[string][]byte
	saves map[string]int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		slots: make(map[string][]byte),
		saves: make(map[string]int),
	}
}

func (m *MemoryStorage) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return slices.Clone(data), nil
}

func (m *MemoryStorage) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = slices.Clone(value)
	m.saves[key]++
	return nil
}

// SaveCount reports how many times key has been written.
func (m *MemoryStorage) SaveCount(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves[key]
}

// Keys returns the keys that currently hold a value, sorted.
func (m *MemoryStorage) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.slots))
}
