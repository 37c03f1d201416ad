package infrastructure

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
)

// MockGateway keeps blobs in memory and records every save in order, so tests
// can assert both round-trips and write sequencing. FailSaves makes every
// SaveCollection return FailErr until cleared.
type MockGateway struct {
	mu        sync.Mutex
	blobs     map[string]json.RawMessage
	SavedKeys []string
	FailSaves bool
	FailErr   error
}

func NewMockGateway() *MockGateway {
	return &MockGateway{blobs: make(map[string]json.RawMessage)}
}

func (m *MockGateway) LoadAll(_ context.Context, userID string) (map[domain.Collection]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blobs := make(map[domain.Collection]json.RawMessage)
	for _, collection := range domain.Collections {
		if raw, ok := m.blobs[collection.Key(userID)]; ok {
			blobs[collection] = raw
		}
	}
	return blobs, nil
}

func (m *MockGateway) SaveCollection(_ context.Context, userID string, collection domain.Collection, data json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves {
		return m.FailErr
	}
	key := collection.Key(userID)
	m.blobs[key] = append(json.RawMessage(nil), data...)
	m.SavedKeys = append(m.SavedKeys, key)
	return nil
}

// Saved returns the stored blob for a key, or nil.
func (m *MockGateway) Saved(key string) json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blobs[key]
}
