package tests

import (
	"context"
	"errors"
	"sync"

	"storefront/pkg/common/domain"
)

type mockCache struct {
	mu      sync.Mutex
	store   map[string]string
	hits    int
	failDel bool
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string]string)}
}

func (m *mockCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.store[key]
	return ok
}

func (m *mockCache) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[key]
	if ok {
		m.hits++
	}
	return v, ok
}

func (m *mockCache) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *mockCache) Del(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDel {
		return errors.New("cache is unavailable")
	}
	for _, key := range keys {
		delete(m.store, key)
	}
	return nil
}

type mockEventDispatcher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (m *mockEventDispatcher) Dispatch(event domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

type mockPaymentGateway struct {
	amount   int64
	currency string
}

func (m *mockPaymentGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (string, error) {
	m.amount = amount
	m.currency = currency
	return "pi_secret_123", nil
}

type mockPhotoRemover struct {
	removed []string
}

func (m *mockPhotoRemover) Remove(path string) error {
	m.removed = append(m.removed, path)
	return nil
}
