package cache

import (
	"context"
	"sync"

	"github.com/emrgen/cms/internal/model"
)

var _ ContentCache = (*MemoryContentCache)(nil)

// MemoryContentCache is a process local ContentCache for single node setups.
// It follows the redis cache rules: older versions never replace newer ones
// and deleted items are never cached again.
type MemoryContentCache struct {
	mu      sync.Mutex
	items   map[string]model.Content
	deleted map[string]struct{}
}

func NewMemoryContentCache() *MemoryContentCache {
	return &MemoryContentCache{
		items:   make(map[string]model.Content),
		deleted: make(map[string]struct{}),
	}
}

func (m *MemoryContentCache) GetContent(ctx context.Context, id string) (*model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (m *MemoryContentCache) SetContent(ctx context.Context, content *model.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.deleted[content.ID]; ok {
		return nil
	}
	if cached, ok := m.items[content.ID]; ok && cached.Version > content.Version {
		return nil
	}

	m.items[content.ID] = *content
	return nil
}

func (m *MemoryContentCache) DeleteContent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, id)
	m.deleted[id] = struct{}{}
	return nil
}
