package storage

import (
	"context"
	"sync"
)

// MemoryKV is a process-local KV, used for development and tests.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

var _ KV = (*MemoryKV)(nil)

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

// NewMemoryKVWith seeds the store with raw values.
func NewMemoryKVWith(values map[string]string) *MemoryKV {
	m := NewMemoryKV()
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryKV) Get(_ context.Context, keys []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *MemoryKV) Apply(_ context.Context, set map[string]string, del []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range set {
		m.values[k] = v
	}
	for _, k := range del {
		delete(m.values, k)
	}
	return nil
}

// Raw returns the stored value of key.
func (m *MemoryKV) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}
