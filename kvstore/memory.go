package kvstore

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a process-local Store.
type MemoryStore struct {
	values map[string]string
	lock   sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (ms *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	value, ok := ms.values[key]
	return value, ok, nil
}

func (ms *MemoryStore) SetMany(_ context.Context, values map[string]string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	for k, v := range values {
		ms.values[k] = v
	}
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, keys ...string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	for _, k := range keys {
		delete(ms.values, k)
	}
	return nil
}

// Put is a raw write used to seed state, including deliberately corrupt values.
func (ms *MemoryStore) Put(key, value string) {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.values[key] = value
}
