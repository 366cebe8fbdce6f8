package transform

import (
	"fmt"
	"sync"

	"github.com/BaSui01/glutils/types"
)

// DefaultMap is a map that builds missing values on first access. The
// factory receives the missing key and runs without the map's lock held, so
// it may call Get for other keys of the same map.
type DefaultMap[K comparable, V any] struct {
	mu      sync.RWMutex
	items   map[K]V
	pending map[K]chan struct{}
	factory func(K) V
}

// NewDefaultMap creates a DefaultMap. A nil factory makes Get fail on
// missing keys instead of creating them.
func NewDefaultMap[K comparable, V any](factory func(K) V) *DefaultMap[K, V] {
	return &DefaultMap[K, V]{
		items:   make(map[K]V),
		pending: make(map[K]chan struct{}),
		factory: factory,
	}
}

// Get returns the value for key, calling the factory and storing its result
// when key is absent. Concurrent Gets of one missing key share a single
// factory call. A factory must not Get its own key.
func (m *DefaultMap[K, V]) Get(key K) (V, error) {
	for {
		m.mu.RLock()
		v, ok := m.items[key]
		m.mu.RUnlock()
		if ok {
			return v, nil
		}

		m.mu.Lock()
		if v, ok := m.items[key]; ok {
			m.mu.Unlock()
			return v, nil
		}
		if m.factory == nil {
			m.mu.Unlock()
			var zero V
			return zero, types.NewError(types.ErrKeyNotFound, fmt.Sprintf("key %v not found", key))
		}
		if done, building := m.pending[key]; building {
			m.mu.Unlock()
			<-done
			continue
		}
		done := make(chan struct{})
		m.pending[key] = done
		m.mu.Unlock()

		return m.build(key, done), nil
	}
}

// build runs the factory for key. A value stored by Set while the factory
// ran takes precedence over the built one.
func (m *DefaultMap[K, V]) build(key K, done chan struct{}) V {
	defer func() {
		m.mu.Lock()
		delete(m.pending, key)
		m.mu.Unlock()
		close(done)
	}()

	v := m.factory(key)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.items[key]; ok {
		return existing
	}
	m.items[key] = v
	return v
}

// Lookup returns the stored value without invoking the factory.
func (m *DefaultMap[K, V]) Lookup(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

// Set stores value under key.
func (m *DefaultMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

// Delete removes key.
func (m *DefaultMap[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

// Len returns the number of stored keys.
func (m *DefaultMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Keys returns the stored keys in unspecified order.
func (m *DefaultMap[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]K, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	return keys
}
