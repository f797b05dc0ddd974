package cache

import (
	"context"

	"github.com/emrgen/cms/internal/model"
)

// ContentCache keeps recently read content items close to the service.
// A miss is reported as (nil, nil).
type ContentCache interface {
	// GetContent gets a content item from the cache.
	GetContent(ctx context.Context, id string) (*model.Content, error)
	// SetContent stores a content item in the cache.
	SetContent(ctx context.Context, content *model.Content) error
	// DeleteContent removes a content item from the cache.
	DeleteContent(ctx context.Context, id string) error
}

var _ ContentCache = (*NopContentCache)(nil)

// NopContentCache never holds anything.
type NopContentCache struct{}

func NewNopContentCache() *NopContentCache {
	return &NopContentCache{}
}

func (n *NopContentCache) GetContent(ctx context.Context, id string) (*model.Content, error) {
	return nil, nil
}

func (n *NopContentCache) SetContent(ctx context.Context, content *model.Content) error {
	return nil
}

func (n *NopContentCache) DeleteContent(ctx context.Context, id string) error {
	return nil
}
