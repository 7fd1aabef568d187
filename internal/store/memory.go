package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps collections in process memory. Payloads are copied on the
// way in and out so callers cannot alias stored bytes.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ RecordStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, collection string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.data[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (m *MemoryStore) Set(ctx context.Context, collection string, payload json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[collection] = buf
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, collection)
	return nil
}
